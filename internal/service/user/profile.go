package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// Me returns the authenticated user's account, statistics included.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}

// ProfileInput is a partial profile update. Nil fields are left unchanged;
// a present empty email clears the stored address.
type ProfileInput struct {
	Username *string
	Email    *string
}

// Validate checks all fields and collects all errors.
func (i ProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.Username != nil && len(strings.TrimSpace(*i.Username)) < MinUsernameLen {
		errs = append(errs, domain.FieldError{
			Field:   "username",
			Message: fmt.Sprintf("must be at least %d characters", MinUsernameLen),
		})
	}
	if i.Email != nil && *i.Email != "" && !strings.Contains(*i.Email, "@") {
		errs = append(errs, domain.FieldError{Field: "email", Message: "must be a valid address"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateProfile changes username and/or email for the authenticated user.
// Returns domain.ErrAlreadyExists when the new username or email is taken.
func (s *Service) UpdateProfile(ctx context.Context, input ProfileInput) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.UpdateProfile(ctx, userID, input.Username, input.Email)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.InfoContext(ctx, "profile updated",
		slog.String("user_id", userID.String()),
	)

	return u, nil
}
