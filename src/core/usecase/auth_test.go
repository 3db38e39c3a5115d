package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jokebox/src/core/domain"
	"jokebox/src/infra/config"
	"jokebox/src/infra/logger"
	"jokebox/src/infra/repo"
	"jokebox/src/infra/token"
)

func newAuthService() (*AuthService, *repo.MemoryRepository) {
	store := repo.NewMemoryRepository()
	tokens := token.NewJWT(config.AuthConfig{
		TokenSecret: "test-secret",
		TokenTTL:    time.Hour,
		TokenIssuer: "jokebox-test",
	})
	return NewAuthService(store, tokens, logger.Discard()), store
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	// One-way derivation only: the hash never equals the plaintext.
	assert.NotEqual(t, "pw123", user.PasswordHash)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other")
	require.Error(t, err)
	assert.True(t, domain.IsAlreadyExists(err))
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "pw123")
	assert.True(t, domain.IsValidationError(err))

	_, err = svc.Register(ctx, "alice", "")
	assert.True(t, domain.IsValidationError(err))
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "pw123")
	require.NoError(t, err)

	tokenString, err := svc.Login(ctx, "alice", "pw123")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	user, err := svc.Authenticate(ctx, tokenString)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

// Unknown username and wrong password must fail identically so the response
// cannot leak which field was wrong.
func TestLogin_UniformFailure(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw123")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "alice", "nope")
	require.Error(t, wrongPassword)
	assert.True(t, domain.IsUnauthorized(wrongPassword))

	_, unknownUser := svc.Login(ctx, "bob", "pw123")
	require.Error(t, unknownUser)
	assert.True(t, domain.IsUnauthorized(unknownUser))

	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}

// A syntactically valid token whose subject no longer resolves to a user is
// unauthenticated, not a 404.
func TestAuthenticate_UnknownSubject(t *testing.T) {
	tokens := token.NewJWT(config.AuthConfig{
		TokenSecret: "test-secret",
		TokenTTL:    time.Hour,
		TokenIssuer: "jokebox-test",
	})
	svc := NewAuthService(repo.NewMemoryRepository(), tokens, logger.Discard())

	signed, err := tokens.Issue(&domain.User{ID: 999})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), signed)
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}
