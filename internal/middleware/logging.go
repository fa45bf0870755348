package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			resp := newResponseWriter(w)

			next.ServeHTTP(resp, r)

			log.WithFields(log.Fields{
				"request_id": RequestIDFromContext(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     resp.statusCode,
				"duration":   time.Since(start).String(),
				"user_agent": r.Header.Get("User-Agent"),
			}).Debug("request served")
		})
	}
}
