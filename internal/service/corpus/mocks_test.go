package corpus

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/ai"
	"github.com/linxiao/corpora/internal/domain"
)

// corpusRepoMock is a mock implementation of corpusRepo.
type corpusRepoMock struct {
	CreateFunc           func(ctx context.Context, entry *domain.CorpusEntry) (*domain.CorpusEntry, error)
	GetByIDFunc          func(ctx context.Context, userID, entryID uuid.UUID) (*domain.CorpusEntry, error)
	FindFunc             func(ctx context.Context, userID uuid.UUID, filter domain.CorpusFilter) ([]*domain.CorpusEntry, int, error)
	UpdateFunc           func(ctx context.Context, userID, entryID uuid.UUID, params domain.CorpusUpdateParams) (*domain.CorpusEntry, error)
	DeleteFunc           func(ctx context.Context, userID, entryID uuid.UUID) error
	AggregateByThemeFunc func(ctx context.Context, userID uuid.UUID) ([]domain.ThemeAggregate, error)
	CountByUserFunc      func(ctx context.Context, userID uuid.UUID) (int, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Entry *domain.CorpusEntry
		}
		GetByID []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			EntryID uuid.UUID
		}
		Find []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Filter domain.CorpusFilter
		}
		Update []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			EntryID uuid.UUID
			Params  domain.CorpusUpdateParams
		}
		Delete []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			EntryID uuid.UUID
		}
		AggregateByTheme []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		CountByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (m *corpusRepoMock) Create(ctx context.Context, entry *domain.CorpusEntry) (*domain.CorpusEntry, error) {
	if m.CreateFunc == nil {
		panic("corpusRepoMock.CreateFunc: method is nil but corpusRepo.Create was just called")
	}
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, struct {
		Ctx   context.Context
		Entry *domain.CorpusEntry
	}{ctx, entry})
	m.lock.Unlock()
	return m.CreateFunc(ctx, entry)
}

func (m *corpusRepoMock) CreateCalls() []struct {
	Ctx   context.Context
	Entry *domain.CorpusEntry
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

func (m *corpusRepoMock) GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.CorpusEntry, error) {
	if m.GetByIDFunc == nil {
		panic("corpusRepoMock.GetByIDFunc: method is nil but corpusRepo.GetByID was just called")
	}
	m.lock.Lock()
	m.calls.GetByID = append(m.calls.GetByID, struct {
		Ctx     context.Context
		UserID  uuid.UUID
		EntryID uuid.UUID
	}{ctx, userID, entryID})
	m.lock.Unlock()
	return m.GetByIDFunc(ctx, userID, entryID)
}

func (m *corpusRepoMock) Find(ctx context.Context, userID uuid.UUID, filter domain.CorpusFilter) ([]*domain.CorpusEntry, int, error) {
	if m.FindFunc == nil {
		panic("corpusRepoMock.FindFunc: method is nil but corpusRepo.Find was just called")
	}
	m.lock.Lock()
	m.calls.Find = append(m.calls.Find, struct {
		Ctx    context.Context
		UserID uuid.UUID
		Filter domain.CorpusFilter
	}{ctx, userID, filter})
	m.lock.Unlock()
	return m.FindFunc(ctx, userID, filter)
}

func (m *corpusRepoMock) FindCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Filter domain.CorpusFilter
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Find
}

func (m *corpusRepoMock) Update(ctx context.Context, userID, entryID uuid.UUID, params domain.CorpusUpdateParams) (*domain.CorpusEntry, error) {
	if m.UpdateFunc == nil {
		panic("corpusRepoMock.UpdateFunc: method is nil but corpusRepo.Update was just called")
	}
	m.lock.Lock()
	m.calls.Update = append(m.calls.Update, struct {
		Ctx     context.Context
		UserID  uuid.UUID
		EntryID uuid.UUID
		Params  domain.CorpusUpdateParams
	}{ctx, userID, entryID, params})
	m.lock.Unlock()
	return m.UpdateFunc(ctx, userID, entryID, params)
}

func (m *corpusRepoMock) UpdateCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	EntryID uuid.UUID
	Params  domain.CorpusUpdateParams
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Update
}

func (m *corpusRepoMock) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("corpusRepoMock.DeleteFunc: method is nil but corpusRepo.Delete was just called")
	}
	m.lock.Lock()
	m.calls.Delete = append(m.calls.Delete, struct {
		Ctx     context.Context
		UserID  uuid.UUID
		EntryID uuid.UUID
	}{ctx, userID, entryID})
	m.lock.Unlock()
	return m.DeleteFunc(ctx, userID, entryID)
}

func (m *corpusRepoMock) AggregateByTheme(ctx context.Context, userID uuid.UUID) ([]domain.ThemeAggregate, error) {
	if m.AggregateByThemeFunc == nil {
		panic("corpusRepoMock.AggregateByThemeFunc: method is nil but corpusRepo.AggregateByTheme was just called")
	}
	m.lock.Lock()
	m.calls.AggregateByTheme = append(m.calls.AggregateByTheme, struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{ctx, userID})
	m.lock.Unlock()
	return m.AggregateByThemeFunc(ctx, userID)
}

func (m *corpusRepoMock) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.CountByUserFunc == nil {
		panic("corpusRepoMock.CountByUserFunc: method is nil but corpusRepo.CountByUser was just called")
	}
	m.lock.Lock()
	m.calls.CountByUser = append(m.calls.CountByUser, struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{ctx, userID})
	m.lock.Unlock()
	return m.CountByUserFunc(ctx, userID)
}

// opinionRepoMock is a mock implementation of opinionRepo.
type opinionRepoMock struct {
	CreateFunc         func(ctx context.Context, op *domain.OpinionEntry) (*domain.OpinionEntry, error)
	DeleteBySourceFunc func(ctx context.Context, sourceID uuid.UUID) (int, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Op  *domain.OpinionEntry
		}
		DeleteBySource []struct {
			Ctx      context.Context
			SourceID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (m *opinionRepoMock) Create(ctx context.Context, op *domain.OpinionEntry) (*domain.OpinionEntry, error) {
	if m.CreateFunc == nil {
		panic("opinionRepoMock.CreateFunc: method is nil but opinionRepo.Create was just called")
	}
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, struct {
		Ctx context.Context
		Op  *domain.OpinionEntry
	}{ctx, op})
	m.lock.Unlock()
	return m.CreateFunc(ctx, op)
}

func (m *opinionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Op  *domain.OpinionEntry
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

func (m *opinionRepoMock) DeleteBySource(ctx context.Context, sourceID uuid.UUID) (int, error) {
	if m.DeleteBySourceFunc == nil {
		panic("opinionRepoMock.DeleteBySourceFunc: method is nil but opinionRepo.DeleteBySource was just called")
	}
	m.lock.Lock()
	m.calls.DeleteBySource = append(m.calls.DeleteBySource, struct {
		Ctx      context.Context
		SourceID uuid.UUID
	}{ctx, sourceID})
	m.lock.Unlock()
	return m.DeleteBySourceFunc(ctx, sourceID)
}

func (m *opinionRepoMock) DeleteBySourceCalls() []struct {
	Ctx      context.Context
	SourceID uuid.UUID
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.DeleteBySource
}

// txManagerMock runs the transactional closure against the bare context.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// analyzerMock is a mock implementation of analyzer.
type analyzerMock struct {
	AnalyzeTextFunc func(ctx context.Context, text string) (*ai.AnalysisResult, error)
}

func (m *analyzerMock) AnalyzeText(ctx context.Context, text string) (*ai.AnalysisResult, error) {
	if m.AnalyzeTextFunc == nil {
		panic("analyzerMock.AnalyzeTextFunc: method is nil but analyzer.AnalyzeText was just called")
	}
	return m.AnalyzeTextFunc(ctx, text)
}

// statsSchedulerMock records scheduled refreshes.
type statsSchedulerMock struct {
	mu        sync.Mutex
	scheduled []uuid.UUID
}

func (m *statsSchedulerMock) Schedule(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduled = append(m.scheduled, userID)
}

func (m *statsSchedulerMock) Scheduled() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scheduled
}
