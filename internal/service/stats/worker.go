// Package stats recomputes denormalized per-user statistics in the
// background. Refreshes are scheduled fire-and-forget after corpus and
// opinion mutations and are idempotent: totals are recomputed from the
// stored rows, never incremented.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/domain"
)

type corpusRepo interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	SumVocabularyByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type opinionRepo interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type userRepo interface {
	UpdateStatistics(ctx context.Context, userID uuid.UUID, stats domain.UserStatistics) error
}

// Worker owns the refresh queue. Schedule never blocks the caller: when
// the queue is full the request is dropped and logged, a later mutation
// will schedule again.
type Worker struct {
	corpus   corpusRepo
	opinions opinionRepo
	users    userRepo
	queue    chan uuid.UUID
	timeout  time.Duration
	log      *slog.Logger
}

// NewWorker creates a refresh worker with a bounded queue.
func NewWorker(
	log *slog.Logger,
	corpus corpusRepo,
	opinions opinionRepo,
	users userRepo,
	queueSize int,
	refreshTimeout time.Duration,
) *Worker {
	return &Worker{
		corpus:   corpus,
		opinions: opinions,
		users:    users,
		queue:    make(chan uuid.UUID, queueSize),
		timeout:  refreshTimeout,
		log:      log.With("service", "stats"),
	}
}

// Schedule enqueues a refresh for the user. Non-blocking: a full queue
// drops the request.
func (w *Worker) Schedule(userID uuid.UUID) {
	select {
	case w.queue <- userID:
	default:
		w.log.Warn("stats queue full, refresh dropped",
			slog.String("user_id", userID.String()),
		)
	}
}

// Run consumes the queue until ctx is canceled. Meant to be started once
// as a goroutine during application wiring.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case userID := <-w.queue:
			refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
			if err := w.Refresh(refreshCtx, userID); err != nil {
				w.log.Error("stats refresh failed",
					slog.String("user_id", userID.String()),
					slog.String("error", err.Error()),
				)
			}
			cancel()
		}
	}
}

// Refresh recomputes the user's statistics from the stored corpus and
// opinion rows and overwrites the persisted counters.
func (w *Worker) Refresh(ctx context.Context, userID uuid.UUID) error {
	totalCorpus, err := w.corpus.CountByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("count corpus entries: %w", err)
	}

	totalVocab, err := w.corpus.SumVocabularyByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("sum vocabulary: %w", err)
	}

	totalOpinions, err := w.opinions.CountByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("count opinion entries: %w", err)
	}

	now := time.Now().UTC()
	err = w.users.UpdateStatistics(ctx, userID, domain.UserStatistics{
		TotalCorpus:     totalCorpus,
		TotalVocabulary: totalVocab,
		TotalOpinions:   totalOpinions,
		LastActive:      now,
	})
	if err != nil {
		return fmt.Errorf("update statistics: %w", err)
	}

	w.log.DebugContext(ctx, "statistics refreshed",
		slog.String("user_id", userID.String()),
		slog.Int("total_corpus", totalCorpus),
		slog.Int("total_vocabulary", totalVocab),
		slog.Int("total_opinions", totalOpinions),
	)

	return nil
}
