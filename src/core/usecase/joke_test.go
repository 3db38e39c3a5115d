package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jokebox/src/core/domain"
	"jokebox/src/infra/logger"
	"jokebox/src/infra/repo"
)

func newJokeFixture(t *testing.T) (*JokeService, *repo.MemoryRepository, *domain.User, *domain.User) {
	t.Helper()
	store := repo.NewMemoryRepository()
	svc := NewJokeService(store, logger.Discard())

	ctx := context.Background()
	alice, err := store.CreateUser(ctx, "alice", "hash-a")
	require.NoError(t, err)
	bob, err := store.CreateUser(ctx, "bob", "hash-b")
	require.NoError(t, err)

	return svc, store, alice, bob
}

func TestCreateAndList(t *testing.T) {
	svc, _, alice, bob := newJokeFixture(t)
	ctx := context.Background()

	joke, err := svc.Create(ctx, alice, "knock knock")
	require.NoError(t, err)
	assert.Equal(t, "knock knock", joke.Value)
	assert.Nil(t, joke.ExternalID)
	assert.Nil(t, joke.Category)
	require.NotNil(t, joke.OwnerUsername)
	assert.Equal(t, "alice", *joke.OwnerUsername)

	jokes, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, jokes, 1)
	assert.Equal(t, joke.ID, jokes[0].ID)

	// Bob's collection is unaffected.
	jokes, err = svc.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, jokes)
}

func TestCreate_EmptyValue(t *testing.T) {
	svc, _, alice, _ := newJokeFixture(t)

	_, err := svc.Create(context.Background(), alice, "")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

// Another user's joke and a nonexistent joke are indistinguishable on the
// read path: both are not found.
func TestGet_OwnershipIsolation(t *testing.T) {
	svc, _, alice, bob := newJokeFixture(t)
	ctx := context.Background()

	joke, err := svc.Create(ctx, alice, "only for alice")
	require.NoError(t, err)

	got, err := svc.Get(ctx, alice, joke.ID)
	require.NoError(t, err)
	assert.Equal(t, joke.ID, got.ID)

	_, asBob := svc.Get(ctx, bob, joke.ID)
	require.Error(t, asBob)
	assert.True(t, domain.IsNotFound(asBob))

	_, missing := svc.Get(ctx, alice, 9999)
	require.Error(t, missing)
	assert.True(t, domain.IsNotFound(missing))
}

func TestUpdate(t *testing.T) {
	svc, _, alice, bob := newJokeFixture(t)
	ctx := context.Background()

	joke, err := svc.Create(ctx, alice, "v1")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice, joke.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Value)

	// The write path distinguishes ownership mismatch from absence.
	_, err = svc.Update(ctx, bob, joke.ID, "v3")
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))

	_, err = svc.Update(ctx, bob, 9999, "v3")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.Update(ctx, alice, joke.ID, "")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

// An unclaimed joke (nil owner) is writable by any authenticated user.
func TestUpdateDelete_UnownedJoke(t *testing.T) {
	svc, store, _, bob := newJokeFixture(t)
	ctx := context.Background()

	unowned := store.InsertUnowned("legacy joke")

	updated, err := svc.Update(ctx, bob, unowned.ID, "claimed text")
	require.NoError(t, err)
	assert.Equal(t, "claimed text", updated.Value)
	assert.Nil(t, updated.OwnerID)

	require.NoError(t, svc.Delete(ctx, bob, unowned.ID))
}

func TestDelete(t *testing.T) {
	svc, _, alice, bob := newJokeFixture(t)
	ctx := context.Background()

	joke, err := svc.Create(ctx, alice, "short-lived")
	require.NoError(t, err)

	err = svc.Delete(ctx, bob, joke.ID)
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))

	require.NoError(t, svc.Delete(ctx, alice, joke.ID))

	_, err = svc.Get(ctx, alice, joke.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	err = svc.Delete(ctx, alice, joke.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
