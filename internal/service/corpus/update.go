package corpus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// Update applies a field-level partial update to one of the user's entries.
// Absent fields stay untouched. A content change recomputes the stored word
// count; a themes change is normalized the same way ingestion normalizes it.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.CorpusEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.CorpusUpdateParams{
		Title:       input.Title,
		Content:     input.Content,
		Translation: input.Translation,
		Summary:     input.Summary,
		Tags:        input.Tags,
		Vocabulary:  input.Vocabulary,
	}
	if input.Themes != nil {
		themes := domain.NormalizeThemes(input.Themes)
		params.Themes = &themes
	}

	updated, err := s.corpus.Update(ctx, userID, input.EntryID, params)
	if err != nil {
		return nil, fmt.Errorf("update corpus entry: %w", err)
	}

	s.stats.Schedule(userID)

	s.log.InfoContext(ctx, "corpus entry updated",
		slog.String("user_id", userID.String()),
		slog.String("corpus_id", updated.ID.String()),
	)

	return updated, nil
}
