package corpus

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// GetByID returns one of the user's corpus entries.
func (s *Service) GetByID(ctx context.Context, entryID uuid.UUID) (*domain.CorpusEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if entryID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	entry, err := s.corpus.GetByID(ctx, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("get corpus entry: %w", err)
	}

	return entry, nil
}
