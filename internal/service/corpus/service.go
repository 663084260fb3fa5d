// Package corpus implements the corpus management use cases: AI-assisted
// ingestion with the opinion dual write, listing, field-level updates,
// cascading deletion, and per-theme statistics.
package corpus

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/ai"
	"github.com/linxiao/corpora/internal/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	// DefaultTitle is assigned when neither a title nor a filename is given.
	DefaultTitle = "Untitled document"
)

type corpusRepo interface {
	Create(ctx context.Context, entry *domain.CorpusEntry) (*domain.CorpusEntry, error)
	GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.CorpusEntry, error)
	Find(ctx context.Context, userID uuid.UUID, filter domain.CorpusFilter) ([]*domain.CorpusEntry, int, error)
	Update(ctx context.Context, userID, entryID uuid.UUID, params domain.CorpusUpdateParams) (*domain.CorpusEntry, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
	AggregateByTheme(ctx context.Context, userID uuid.UUID) ([]domain.ThemeAggregate, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type opinionRepo interface {
	Create(ctx context.Context, op *domain.OpinionEntry) (*domain.OpinionEntry, error)
	DeleteBySource(ctx context.Context, sourceID uuid.UUID) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type analyzer interface {
	AnalyzeText(ctx context.Context, text string) (*ai.AnalysisResult, error)
}

// statsScheduler accepts fire-and-forget statistics refresh requests.
type statsScheduler interface {
	Schedule(userID uuid.UUID)
}

// Service provides corpus management operations.
type Service struct {
	corpus   corpusRepo
	opinions opinionRepo
	tx       txManager
	analyzer analyzer
	stats    statsScheduler
	log      *slog.Logger

	defaultLimit    int
	maxLimit        int
	maxContentBytes int
}

// NewService creates a new corpus service.
func NewService(
	log *slog.Logger,
	corpus corpusRepo,
	opinions opinionRepo,
	tx txManager,
	analyzer analyzer,
	stats statsScheduler,
) *Service {
	return &Service{
		corpus:       corpus,
		opinions:     opinions,
		tx:           tx,
		analyzer:     analyzer,
		stats:        stats,
		log:          log.With("service", "corpus"),
		defaultLimit: DefaultLimit,
		maxLimit:     MaxLimit,
	}
}

// WithLimits overrides the pagination bounds and the content size cap.
// Zero values keep the current settings.
func (s *Service) WithLimits(defaultLimit, maxLimit, maxContentBytes int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	if maxContentBytes > 0 {
		s.maxContentBytes = maxContentBytes
	}
	return s
}

// clampLimit forces an explicit limit into [1, maxLimit]. Only an absent
// limit falls back to defaultLimit; an explicit 0 clamps to 1.
func (s *Service) clampLimit(limit *int) int {
	if limit == nil {
		return s.defaultLimit
	}
	if *limit < 1 {
		return 1
	}
	if *limit > s.maxLimit {
		return s.maxLimit
	}
	return *limit
}

// clampPage forces page to be at least 1.
func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
