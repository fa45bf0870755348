package middleware

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type tokenChecker interface {
	Check(ctx context.Context, token string) (*auth.Identity, error)
}

type displayNameSetter interface {
	SetDisplayName(ctx context.Context, userID, displayName string) error
}

type AuthMiddlewareHandler struct {
	checker      tokenChecker
	directory    displayNameSetter
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(
	checker tokenChecker,
	directory displayNameSetter,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		checker:   checker,
		directory: directory,
		allowedPaths: map[string]bool{
			"/health":      true,
			"/leaderboard": true,
		},
	}
}

// AuthCheck resolves the bearer token to an identity and stores it in the request context.
// The display name carried by the token is synced to the directory on the way in.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions || h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token := auth.BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				span.SetStatus(codes.Error, "missing-auth-token")
				apperr.WriteHTTP(w, "auth check", apperr.Authentication(auth.ErrMissingToken))
				return
			}

			identity, err := h.checker.Check(ctx, token)
			if err != nil {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s: %s", r.URL.Path, err)
				span.SetStatus(codes.Error, "invalid-token")
				span.RecordError(err)
				apperr.WriteHTTP(w, "auth check", apperr.Authentication(err))
				return
			}

			if identity.DisplayName != "" && h.directory != nil {
				if err := h.directory.SetDisplayName(ctx, identity.UserID, identity.DisplayName); err != nil {
					log.Warnf("sync display name of %s: %s", identity.UserID, err)
				}
			}

			span.SetAttributes(attribute.String("user.id", identity.UserID))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), *identity)))
		})
	}
}
