package ports

import (
	"context"

	"jokebox/src/core/domain"
)

// TokenService issues and validates stateless session tokens.
// Tokens are opaque to callers and self-contained; there is no server-side
// session table.
type TokenService interface {
	// Issue produces a signed token whose subject is the user's id.
	Issue(user *domain.User) (string, error)

	// Parse verifies signature and expiry and returns the subject user id.
	// Any failure (bad signature, malformed token, expired, non-numeric
	// subject) is domain.ErrUnauthorized.
	Parse(tokenString string) (int64, error)
}

// RandomJoke is a joke fetched from the external feed, normalized.
// Category is the first of the upstream's reported categories, or nil.
type RandomJoke struct {
	ExternalID string
	Value      string
	Category   *string
}

// JokeFeed wraps the third-party joke service.
// Every failure mode collapses to domain.ErrUpstreamUnavailable.
type JokeFeed interface {
	Categories(ctx context.Context) ([]string, error)
	Random(ctx context.Context, category string) (*RandomJoke, error)
}
