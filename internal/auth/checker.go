package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is who the identity provider says the caller is.
type Identity struct {
	UserID      string
	DisplayName string
}

type Checker interface {
	Check(ctx context.Context, token string) (*Identity, error)
}

var _ Checker = (*TokenChecker)(nil)

// Claims are the token claims issued by the identity provider.
// The subject is the user id, Name is optional.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenChecker validates HS256 tokens signed with a shared secret.
type TokenChecker struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewTokenChecker(secret, issuer string) *TokenChecker {
	return &TokenChecker{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

func (c *TokenChecker) Check(_ context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return &Identity{
		UserID:      userID,
		DisplayName: strings.TrimSpace(claims.Name),
	}, nil
}

// Issue signs a token for the given identity. Used by dev tooling and tests,
// production tokens come from the identity provider.
func (c *TokenChecker) Issue(identity Identity, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		Name: identity.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
