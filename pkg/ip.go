package pkg

import (
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
)

var (
	localDockerIpRegex = regexp.MustCompile(`^172\.\d{1,3}\.0\.1:\d{1,5}`)
)

func IPIsLocal(ipAddr string) bool {
	if strings.HasPrefix(ipAddr, "127.0.0.1:") {
		return true
	}
	return localDockerIpRegex.MatchString(ipAddr)
}

// ReadUserIP returns the caller address, honoring reverse proxy headers.
// Local and docker bridge addresses collapse to "localhost".
func ReadUserIP(r *http.Request) (string, error) {
	ipAddr := r.Header.Get("X-Real-Ip")
	if ipAddr == "" {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			ipAddr = strings.TrimSpace(strings.Split(fwd, ",")[0])
		}
	}
	if ipAddr == "" {
		ipAddr = r.RemoteAddr
	}

	if IPIsLocal(ipAddr) {
		return "localhost", nil
	}

	host := ipAddr
	if h, _, err := net.SplitHostPort(ipAddr); err == nil {
		host = h
	}
	if net.ParseIP(host) == nil {
		return "", fmt.Errorf("ip addr %s is invalid", ipAddr)
	}

	return host, nil
}
