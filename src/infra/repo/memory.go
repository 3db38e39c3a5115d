package repo

import (
	"context"
	"sync"
	"time"

	"jokebox/src/core/domain"
	"jokebox/src/core/ports"
)

// MemoryRepository is an in-memory CollectionRepository used in tests.
// It mirrors the Postgres adapter's behavior, including the uniqueness of
// usernames and of (external_id, user_id) pairs.
type MemoryRepository struct {
	mu         sync.Mutex
	users      map[int64]*domain.User
	jokes      map[int64]*domain.Joke
	nextUserID int64
	nextJokeID int64
}

var _ ports.CollectionRepository = (*MemoryRepository)(nil)

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:      make(map[int64]*domain.User),
		jokes:      make(map[int64]*domain.Joke),
		nextUserID: 1,
		nextJokeID: 1,
	}
}

func (r *MemoryRepository) Health(_ context.Context) error {
	return nil
}

func (r *MemoryRepository) CreateUser(_ context.Context, username, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return nil, domain.NewAlreadyExistsError("username already exists")
		}
	}

	u := &domain.User{
		ID:           r.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.users[u.ID] = u
	r.nextUserID++

	out := *u
	return &out, nil
}

func (r *MemoryRepository) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.NewNotFoundError("user")
}

func (r *MemoryRepository) GetUserByID(_ context.Context, userID int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, domain.NewNotFoundError("user")
	}
	out := *u
	return &out, nil
}

// copyJoke resolves the owner's username the way the SQL LEFT JOIN does.
func (r *MemoryRepository) copyJoke(j *domain.Joke) *domain.Joke {
	out := *j
	out.OwnerUsername = nil
	if j.OwnerID != nil {
		if u, ok := r.users[*j.OwnerID]; ok {
			name := u.Username
			out.OwnerUsername = &name
		}
	}
	return &out
}

func (r *MemoryRepository) ListJokesByOwner(_ context.Context, ownerID int64) ([]domain.Joke, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	jokes := make([]domain.Joke, 0)
	// Insertion order: ids are assigned sequentially.
	for id := int64(1); id < r.nextJokeID; id++ {
		j, ok := r.jokes[id]
		if !ok {
			continue
		}
		if j.OwnerID != nil && *j.OwnerID == ownerID {
			jokes = append(jokes, *r.copyJoke(j))
		}
	}
	return jokes, nil
}

func (r *MemoryRepository) GetJokeForOwner(_ context.Context, jokeID, ownerID int64) (*domain.Joke, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jokes[jokeID]
	if !ok || j.OwnerID == nil || *j.OwnerID != ownerID {
		return nil, domain.NewNotFoundError("joke")
	}
	return r.copyJoke(j), nil
}

func (r *MemoryRepository) GetJokeByID(_ context.Context, jokeID int64) (*domain.Joke, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jokes[jokeID]
	if !ok {
		return nil, domain.NewNotFoundError("joke")
	}
	return r.copyJoke(j), nil
}

func (r *MemoryRepository) CreateJoke(_ context.Context, ownerID int64, value string) (*domain.Joke, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner := ownerID
	j := &domain.Joke{
		ID:        r.nextJokeID,
		Value:     value,
		OwnerID:   &owner,
		CreatedAt: time.Now(),
	}
	r.jokes[j.ID] = j
	r.nextJokeID++
	return r.copyJoke(j), nil
}

// InsertUnowned seeds a joke with no owner. Only tests exercising the
// unclaimed-record write policy need it; the API never creates such rows.
func (r *MemoryRepository) InsertUnowned(value string) *domain.Joke {
	r.mu.Lock()
	defer r.mu.Unlock()

	j := &domain.Joke{
		ID:        r.nextJokeID,
		Value:     value,
		CreatedAt: time.Now(),
	}
	r.jokes[j.ID] = j
	r.nextJokeID++
	return r.copyJoke(j)
}

func (r *MemoryRepository) UpdateJokeValue(_ context.Context, jokeID int64, value string) (*domain.Joke, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jokes[jokeID]
	if !ok {
		return nil, domain.NewNotFoundError("joke")
	}
	j.Value = value
	return r.copyJoke(j), nil
}

func (r *MemoryRepository) DeleteJoke(_ context.Context, jokeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jokes[jokeID]; !ok {
		return domain.NewNotFoundError("joke")
	}
	delete(r.jokes, jokeID)
	return nil
}

func (r *MemoryRepository) UpsertExternalJoke(_ context.Context, ownerID int64, externalID, value string, category *string) (*domain.Joke, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := int64(1); id < r.nextJokeID; id++ {
		j, ok := r.jokes[id]
		if !ok {
			continue
		}
		if j.ExternalID != nil && *j.ExternalID == externalID &&
			j.OwnerID != nil && *j.OwnerID == ownerID {
			return r.copyJoke(j), false, nil
		}
	}

	owner := ownerID
	ext := externalID
	j := &domain.Joke{
		ID:         r.nextJokeID,
		ExternalID: &ext,
		Value:      value,
		Category:   category,
		OwnerID:    &owner,
		CreatedAt:  time.Now(),
	}
	r.jokes[j.ID] = j
	r.nextJokeID++
	return r.copyJoke(j), true, nil
}
