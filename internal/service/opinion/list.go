package opinion

import (
	"context"
	"fmt"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// Pagination describes the page slice returned by List.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// ListResult is a page of opinion entries plus pagination metadata.
type ListResult struct {
	Entries    []*domain.OpinionEntry
	Pagination Pagination
}

// List returns a page of the user's opinion entries, newest first.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	page := clampPage(input.Page)
	limit := clampLimit(input.Limit)

	filter := domain.OpinionFilter{
		Theme:  input.Theme,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	entries, total, err := s.opinions.Find(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("find opinion entries: %w", err)
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
