package opinion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// Update applies a field-level partial update to one of the user's
// opinions. Absent fields stay untouched. Concurrent updates follow
// last-write-wins.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.OpinionEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.OpinionUpdateParams{
		Content:            input.Content,
		Theme:              input.Theme,
		SubThemes:          input.SubThemes,
		Tags:               input.Tags,
		SupportingFacts:    input.SupportingFacts,
		CriticalQuestion:   input.CriticalQuestion,
		Counterargument:    input.Counterargument,
		PersonalReflection: input.PersonalReflection,
	}

	updated, err := s.opinions.Update(ctx, userID, input.OpinionID, params)
	if err != nil {
		return nil, fmt.Errorf("update opinion entry: %w", err)
	}

	s.log.InfoContext(ctx, "opinion entry updated",
		slog.String("user_id", userID.String()),
		slog.String("opinion_id", updated.ID.String()),
	)

	return updated, nil
}
