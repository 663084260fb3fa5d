package opinion

import (
	"context"
	"fmt"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// StatsResult is the per-theme rollup of a user's opinions.
type StatsResult struct {
	Total   int
	ByTheme []domain.ThemeAggregate
}

// Stats returns the per-theme rollup of the user's opinions.
func (s *Service) Stats(ctx context.Context) (*StatsResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	aggs, err := s.opinions.AggregateByTheme(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate by theme: %w", err)
	}

	total, err := s.opinions.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count opinion entries: %w", err)
	}

	return &StatsResult{Total: total, ByTheme: aggs}, nil
}
