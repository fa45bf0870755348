package middleware

import (
	"io"
	"net/http"
)

// drainLimit caps how much of an unread body is consumed to keep the connection alive.
// Bigger leftovers are dropped along with the connection.
const drainLimit = 64 << 10

// LimitRequestBody rejects bodies over maxBytes once a handler reads past the limit,
// and drains a small leftover after the handler returns so keep-alive connections get reused.
func LimitRequestBody(maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			body := http.MaxBytesReader(w, r.Body, maxBytes)
			r.Body = body
			next.ServeHTTP(w, r)

			_, _ = io.CopyN(io.Discard, body, drainLimit)
			_ = body.Close()
		})
	}
}
