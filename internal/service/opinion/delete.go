package opinion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// Delete permanently removes one of the user's opinion entries.
// The source corpus entry is untouched.
func (s *Service) Delete(ctx context.Context, opinionID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if opinionID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.opinions.Delete(ctx, userID, opinionID); err != nil {
		return fmt.Errorf("delete opinion entry: %w", err)
	}

	s.stats.Schedule(userID)

	s.log.InfoContext(ctx, "opinion entry deleted",
		slog.String("user_id", userID.String()),
		slog.String("opinion_id", opinionID.String()),
	)

	return nil
}
