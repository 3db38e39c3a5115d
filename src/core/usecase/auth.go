package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"jokebox/src/core/domain"
	"jokebox/src/core/ports"
)

// AuthService handles registration, login, and session resolution.
type AuthService struct {
	repo   ports.CollectionRepository
	tokens ports.TokenService
	log    *slog.Logger
}

func NewAuthService(repo ports.CollectionRepository, tokens ports.TokenService, log *slog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Register creates a new user with a bcrypt-hashed password.
// Usernames are unique (case-sensitive exact match).
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, username, string(hash))
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies credentials and issues a session token.
// Unknown username and wrong password fail identically so that callers
// cannot tell which field was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", domain.NewValidationError("username", "is required")
	}
	if password == "" {
		return "", domain.NewValidationError("password", "is required")
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.NewUnauthorizedError("invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.NewUnauthorizedError("invalid credentials")
	}

	return s.tokens.Issue(user)
}

// Authenticate validates a session token and resolves its subject to a live
// user. Both steps fail as unauthenticated: an invalid token and a valid
// token for a since-deleted user look identical to the caller.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	userID, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	return s.Resolve(ctx, userID)
}

// Resolve maps an authenticated token subject back to a live user.
// A valid token whose user no longer exists is unauthenticated, not a 404.
func (s *AuthService) Resolve(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("unknown user")
		}
		return nil, err
	}
	return user, nil
}
