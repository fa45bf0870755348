package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
)

// PanicRecovery turns a handler panic into a 500, unless the handler already started
// its response. http.ErrAbortHandler is passed on so the server aborts the connection.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			resp := newResponseWriter(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				span := trace.SpanFromContext(req.Context())
				span.SetStatus(codes.Error, fmt.Sprintf("panic: %v", rec))

				log.WithFields(log.Fields{
					"request_id": RequestIDFromContext(req.Context()),
					"method":     req.Method,
					"route":      routeTemplate(req),
				}).Errorf("panic serving %s: %v\n%s", req.URL.Path, rec, debug.Stack())

				if resp.wroteHeader {
					return
				}
				http.Error(resp, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(resp, req)
		})
	}
}
