package corpus

import (
	"context"
	"fmt"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// Stats returns the per-theme rollup of the user's corpus. Totals are
// recomputed from the stored entries on every call.
func (s *Service) Stats(ctx context.Context) (*StatsResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	aggs, err := s.corpus.AggregateByTheme(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate by theme: %w", err)
	}

	total, err := s.corpus.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count corpus entries: %w", err)
	}

	vocab := 0
	for _, a := range aggs {
		vocab += a.VocabularyCount
	}

	return &StatsResult{
		Total:           total,
		ByTheme:         aggs,
		TotalVocabulary: vocab,
	}, nil
}
