package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linxiao/corpora/internal/domain"
)

// LoginInput is the credential payload for Login.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the user with a fresh access
// token. An unknown username and a wrong password both return
// domain.ErrUnauthorized so the two cases are indistinguishable.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.NewValidationError("credentials", "username and password are required")
	}

	u, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Compare(u.PasswordHash, input.Password) {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.tokens.GenerateAccessToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", u.ID.String()),
	)

	return &AuthResult{User: u, Token: token}, nil
}
