// Package auth supplies the bearer token forwarded to the backend.
// Tokens are never verified here; the backend and identity provider own that.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"trendboard/internal/domain"
)

// TokenSource returns the bearer token for the current caller.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type tokenKey struct{}

// WithToken returns a context carrying the caller's session token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token stored by WithToken, or "".
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// BearerToken extracts the token from an Authorization header value.
// It returns "" unless the header uses the Bearer scheme.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// ContextSource serves the token forwarded with the inbound request.
// Tokens that parse as JWTs are checked for expiry so a stale session fails
// before any network call; opaque tokens are passed through.
type ContextSource struct {
	now func() time.Time
}

// NewContextSource creates a ContextSource using the wall clock.
func NewContextSource() *ContextSource {
	return &ContextSource{now: time.Now}
}

// Token implements TokenSource.
func (s *ContextSource) Token(ctx context.Context) (string, error) {
	token := TokenFromContext(ctx)
	if token == "" {
		return "", domain.ErrMissingToken
	}
	if err := s.checkExpiry(token); err != nil {
		return "", err
	}
	return token, nil
}

func (s *ContextSource) checkExpiry(token string) error {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(s.now()) {
		return domain.ErrTokenExpired
	}
	return nil
}

// StaticSource always returns the same token. An empty token behaves like a
// missing session.
type StaticSource string

// Token implements TokenSource.
func (s StaticSource) Token(context.Context) (string, error) {
	if s == "" {
		return "", domain.ErrMissingToken
	}
	return string(s), nil
}
