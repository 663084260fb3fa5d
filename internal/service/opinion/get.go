package opinion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// GetByID returns one of the user's opinion entries.
func (s *Service) GetByID(ctx context.Context, opinionID uuid.UUID) (*domain.OpinionEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if opinionID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	op, err := s.opinions.GetByID(ctx, userID, opinionID)
	if err != nil {
		return nil, fmt.Errorf("get opinion entry: %w", err)
	}

	return op, nil
}
