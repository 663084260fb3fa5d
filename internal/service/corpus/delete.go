package corpus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// Delete permanently removes a corpus entry and every opinion derived from
// it. The entry deletion verifies ownership; the opinion cascade does not
// re-check it. A cascade failure after the entry is gone is logged, and the
// deletion is still reported successful.
func (s *Service) Delete(ctx context.Context, entryID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if entryID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.corpus.Delete(ctx, userID, entryID); err != nil {
		return fmt.Errorf("delete corpus entry: %w", err)
	}

	removed, err := s.opinions.DeleteBySource(ctx, entryID)
	if err != nil {
		s.log.ErrorContext(ctx, "opinion cascade failed",
			slog.String("user_id", userID.String()),
			slog.String("corpus_id", entryID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.stats.Schedule(userID)

	s.log.InfoContext(ctx, "corpus entry deleted",
		slog.String("user_id", userID.String()),
		slog.String("corpus_id", entryID.String()),
		slog.Int("opinions_removed", removed),
	)

	return nil
}
