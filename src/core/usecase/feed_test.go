package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jokebox/src/core/domain"
	"jokebox/src/core/ports"
	"jokebox/src/infra/logger"
	"jokebox/src/infra/repo"
)

// stubFeed returns canned responses, or a single upstream failure.
type stubFeed struct {
	categories []string
	random     *ports.RandomJoke
	err        error
}

func (f *stubFeed) Categories(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *stubFeed) Random(_ context.Context, _ string) (*ports.RandomJoke, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.random, nil
}

func TestFeedCategories(t *testing.T) {
	feed := &stubFeed{categories: []string{"animal", "dev"}}
	svc := NewFeedService(repo.NewMemoryRepository(), feed, logger.Discard())

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"animal", "dev"}, categories)
}

// Fetching the same external joke twice for the same user yields the same
// record both times and never creates a second row.
func TestFeedRandom_Idempotent(t *testing.T) {
	store := repo.NewMemoryRepository()
	ctx := context.Background()
	alice, err := store.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	sport := "sport"
	feed := &stubFeed{random: &ports.RandomJoke{
		ExternalID: "ext-1",
		Value:      "a sporty joke",
		Category:   &sport,
	}}
	svc := NewFeedService(store, feed, logger.Discard())

	first, created, err := svc.Random(ctx, alice, "sport")
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, first.ExternalID)
	assert.Equal(t, "ext-1", *first.ExternalID)
	require.NotNil(t, first.Category)
	assert.Equal(t, "sport", *first.Category)

	second, created, err := svc.Random(ctx, alice, "sport")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	jokes, err := store.ListJokesByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, jokes, 1)
}

// The same external joke fetched by two different users is stored once per
// user: dedup is keyed by (external_id, owner), not by external_id alone.
func TestFeedRandom_PerUserDedup(t *testing.T) {
	store := repo.NewMemoryRepository()
	ctx := context.Background()
	alice, err := store.CreateUser(ctx, "alice", "hash-a")
	require.NoError(t, err)
	bob, err := store.CreateUser(ctx, "bob", "hash-b")
	require.NoError(t, err)

	feed := &stubFeed{random: &ports.RandomJoke{ExternalID: "ext-1", Value: "shared joke"}}
	svc := NewFeedService(store, feed, logger.Discard())

	forAlice, created, err := svc.Random(ctx, alice, "")
	require.NoError(t, err)
	assert.True(t, created)

	forBob, created, err := svc.Random(ctx, bob, "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, forAlice.ID, forBob.ID)
}

func TestFeedRandom_UpstreamFailure(t *testing.T) {
	store := repo.NewMemoryRepository()
	ctx := context.Background()
	alice, err := store.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	feed := &stubFeed{err: domain.NewUpstreamError("failed to fetch joke")}
	svc := NewFeedService(store, feed, logger.Discard())

	_, _, err = svc.Random(ctx, alice, "")
	require.Error(t, err)
	assert.True(t, domain.IsUpstreamUnavailable(err))

	// No persistence write happened.
	jokes, err := store.ListJokesByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, jokes)
}
