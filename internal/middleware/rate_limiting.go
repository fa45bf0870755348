package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=rate_limiting_mocks_test.go -package=middleware_test

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit allows allowedPerMin requests per minute for each user, or for each
// client ip on public routes. Limiter failures let the request through.
func RateLimit(
	rateLimiter RequestRateLimiter,
	metricsManager *metrics.Manager,
	routerName string,
	allowedPerMin int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rateLimiter == nil || allowedPerMin <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := rateLimiter.Allow(
				r.Context(),
				rateLimitKey(r, routerName),
				redis_rate.PerMinute(allowedPerMin),
			)
			if err != nil {
				log.Warnf("rate limit check for %s: %s", r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
			http.Error(
				w,
				fmt.Sprintf("retry after %.0f seconds", res.RetryAfter.Seconds()),
				http.StatusTooManyRequests,
			)
		})
	}
}

func rateLimitKey(r *http.Request, routerName string) string {
	if userID := auth.UserID(r.Context()); userID != "" {
		return routerName + ":user:" + userID
	}
	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		ip = "unknown"
	}
	return routerName + ":ip:" + ip
}
