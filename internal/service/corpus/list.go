package corpus

import (
	"context"
	"fmt"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// List returns a page of the user's corpus entries, newest first.
// Out-of-range page and limit values are clamped, never rejected.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	page := clampPage(input.Page)
	limit := s.clampLimit(input.Limit)

	filter := domain.CorpusFilter{
		Theme:  input.Theme,
		Search: input.Search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	entries, total, err := s.corpus.Find(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("find corpus entries: %w", err)
	}

	return &ListResult{
		Entries: entries,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}
