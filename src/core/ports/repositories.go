// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"jokebox/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// CollectionRepository covers user and joke persistence.
//
// Ownership semantics are split across two read paths on purpose:
// GetJokeForOwner scopes the lookup to the caller so that absence and
// another user's joke are indistinguishable, while GetJokeByID is unscoped
// and feeds the write-path ownership check (which distinguishes 404 from 403).
type CollectionRepository interface {
	Repository

	// Users
	CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// Jokes
	ListJokesByOwner(ctx context.Context, ownerID int64) ([]domain.Joke, error)
	GetJokeForOwner(ctx context.Context, jokeID, ownerID int64) (*domain.Joke, error)
	GetJokeByID(ctx context.Context, jokeID int64) (*domain.Joke, error)
	CreateJoke(ctx context.Context, ownerID int64, value string) (*domain.Joke, error)
	UpdateJokeValue(ctx context.Context, jokeID int64, value string) (*domain.Joke, error)
	DeleteJoke(ctx context.Context, jokeID int64) error

	// UpsertExternalJoke persists a joke fetched from the external feed.
	// If a joke with the same (externalID, ownerID) pair already exists it is
	// returned unchanged with created=false. The uniqueness guarantee is
	// enforced by the storage layer, so a concurrent second writer must fall
	// back to returning the now-existing row rather than failing.
	UpsertExternalJoke(ctx context.Context, ownerID int64, externalID, value string, category *string) (joke *domain.Joke, created bool, err error)
}
