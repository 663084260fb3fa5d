// Package user implements registration, login, and profile management.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/domain"
)

const (
	MinUsernameLen = 3
	MinPasswordLen = 6
)

type userRepo interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, username, email *string) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// Service provides user account operations.
type Service struct {
	users  userRepo
	tokens tokenIssuer
	hasher passwordHasher
	log    *slog.Logger
}

// NewService creates a new user service.
func NewService(log *slog.Logger, users userRepo, tokens tokenIssuer, hasher passwordHasher) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		log:    log.With("service", "user"),
	}
}

// AuthResult is a user paired with a freshly issued access token.
type AuthResult struct {
	User  *domain.User
	Token string
}
