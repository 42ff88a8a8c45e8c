package identity

import (
	"context"
	"time"
)

// TokenExpiry represents a bearer token and its expiration time.
type TokenExpiry struct {
	Token     string
	ExpiresAt time.Time
}

// TokenProvider retrieves bearer tokens for a fixed audience.
type TokenProvider interface {
	// GetToken retrieves a token and its expiration time.
	GetToken(ctx context.Context) (TokenExpiry, error)
}

// staticTokenProvider returns a fixed token (or error). Used by tests and
// local development against servers that accept any bearer token.
type staticTokenProvider struct {
	token     string
	expiresAt time.Time
	err       error
}

// NewStaticTokenProvider creates a provider that always returns the given
// token, expiry and error.
func NewStaticTokenProvider(token string, expiresAt time.Time, err error) TokenProvider {
	return &staticTokenProvider{token: token, expiresAt: expiresAt, err: err}
}

func (s *staticTokenProvider) GetToken(_ context.Context) (TokenExpiry, error) {
	if s.err != nil {
		return TokenExpiry{}, s.err
	}
	return TokenExpiry{Token: s.token, ExpiresAt: s.expiresAt}, nil
}
