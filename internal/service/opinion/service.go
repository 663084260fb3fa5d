// Package opinion implements the opinion entry use cases: listing,
// field-level updates, deletion, and per-theme statistics. Opinions are
// created by corpus ingestion, never directly.
package opinion

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type opinionRepo interface {
	GetByID(ctx context.Context, userID, opinionID uuid.UUID) (*domain.OpinionEntry, error)
	Find(ctx context.Context, userID uuid.UUID, filter domain.OpinionFilter) ([]*domain.OpinionEntry, int, error)
	Update(ctx context.Context, userID, opinionID uuid.UUID, params domain.OpinionUpdateParams) (*domain.OpinionEntry, error)
	Delete(ctx context.Context, userID, opinionID uuid.UUID) error
	AggregateByTheme(ctx context.Context, userID uuid.UUID) ([]domain.ThemeAggregate, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// statsScheduler accepts fire-and-forget statistics refresh requests.
type statsScheduler interface {
	Schedule(userID uuid.UUID)
}

// Service provides opinion entry operations.
type Service struct {
	opinions opinionRepo
	stats    statsScheduler
	log      *slog.Logger
}

// NewService creates a new opinion service.
func NewService(log *slog.Logger, opinions opinionRepo, stats statsScheduler) *Service {
	return &Service{
		opinions: opinions,
		stats:    stats,
		log:      log.With("service", "opinion"),
	}
}

// clampLimit forces an explicit limit into [1, MaxLimit]. Only an absent
// limit falls back to DefaultLimit; an explicit 0 clamps to 1.
func clampLimit(limit *int) int {
	if limit == nil {
		return DefaultLimit
	}
	if *limit < 1 {
		return 1
	}
	if *limit > MaxLimit {
		return MaxLimit
	}
	return *limit
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
