// Package usecase contains the application services that sit between HTTP
// handlers and the repository/gateway ports.
package usecase

import (
	"context"
	"log/slog"

	"jokebox/src/core/domain"
	"jokebox/src/core/ports"
)

// JokeService handles the ownership-scoped CRUD over the joke collection.
type JokeService struct {
	repo ports.CollectionRepository
	log  *slog.Logger
}

func NewJokeService(repo ports.CollectionRepository, log *slog.Logger) *JokeService {
	return &JokeService{repo: repo, log: log}
}

// List returns all jokes owned by the user, in insertion order.
func (s *JokeService) List(ctx context.Context, user *domain.User) ([]domain.Joke, error) {
	return s.repo.ListJokesByOwner(ctx, user.ID)
}

// Get returns a single joke owned by the user. A joke that exists but
// belongs to someone else surfaces as not found, same as absence.
func (s *JokeService) Get(ctx context.Context, user *domain.User, jokeID int64) (*domain.Joke, error) {
	return s.repo.GetJokeForOwner(ctx, jokeID, user.ID)
}

// Create stores a new user-authored joke. External id and category stay nil.
func (s *JokeService) Create(ctx context.Context, user *domain.User, value string) (*domain.Joke, error) {
	if value == "" {
		return nil, domain.NewValidationError("value", "is required")
	}
	joke, err := s.repo.CreateJoke(ctx, user.ID, value)
	if err != nil {
		return nil, err
	}
	s.log.Info("joke created", "joke_id", joke.ID, "user_id", user.ID)
	return joke, nil
}

// Update replaces the joke text. Unlike Get, the write path distinguishes
// absence (not found) from an ownership mismatch (forbidden); a joke with no
// owner is unclaimed and writable by any authenticated user.
func (s *JokeService) Update(ctx context.Context, user *domain.User, jokeID int64, value string) (*domain.Joke, error) {
	joke, err := s.repo.GetJokeByID(ctx, jokeID)
	if err != nil {
		return nil, err
	}
	if joke.OwnerID != nil && !joke.OwnedBy(user.ID) {
		return nil, domain.NewForbiddenError("not your joke")
	}
	if value == "" {
		return nil, domain.NewValidationError("value", "is required")
	}
	return s.repo.UpdateJokeValue(ctx, jokeID, value)
}

// Delete removes the joke. Same ownership policy as Update.
func (s *JokeService) Delete(ctx context.Context, user *domain.User, jokeID int64) error {
	joke, err := s.repo.GetJokeByID(ctx, jokeID)
	if err != nil {
		return err
	}
	if joke.OwnerID != nil && !joke.OwnedBy(user.ID) {
		return domain.NewForbiddenError("not your joke")
	}
	if err := s.repo.DeleteJoke(ctx, jokeID); err != nil {
		return err
	}
	s.log.Info("joke deleted", "joke_id", jokeID, "user_id", user.ID)
	return nil
}
