package usecase

import (
	"context"
	"log/slog"

	"jokebox/src/core/domain"
	"jokebox/src/core/ports"
)

// FeedService handles ingestion from the external joke feed.
type FeedService struct {
	repo ports.CollectionRepository
	feed ports.JokeFeed
	log  *slog.Logger
}

func NewFeedService(repo ports.CollectionRepository, feed ports.JokeFeed, log *slog.Logger) *FeedService {
	return &FeedService{repo: repo, feed: feed, log: log}
}

// Categories returns the upstream category list.
func (s *FeedService) Categories(ctx context.Context) ([]string, error) {
	return s.feed.Categories(ctx)
}

// Random fetches a random joke from the feed (optionally filtered by
// category) and stores it for the user. Repeated fetches of the same
// external joke never duplicate: the existing record is returned with
// created=false. An upstream failure aborts before any persistence write.
func (s *FeedService) Random(ctx context.Context, user *domain.User, category string) (*domain.Joke, bool, error) {
	fetched, err := s.feed.Random(ctx, category)
	if err != nil {
		return nil, false, err
	}

	joke, created, err := s.repo.UpsertExternalJoke(ctx, user.ID, fetched.ExternalID, fetched.Value, fetched.Category)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.log.Info("external joke ingested",
			"joke_id", joke.ID,
			"external_id", fetched.ExternalID,
			"user_id", user.ID,
		)
	}
	return joke, created, nil
}
