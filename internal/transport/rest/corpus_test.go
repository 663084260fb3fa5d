package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/ai"
	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/internal/service/corpus"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type corpusServiceMock struct {
	IngestFunc  func(ctx context.Context, input corpus.IngestInput) (*domain.CorpusEntry, error)
	ListFunc    func(ctx context.Context, input corpus.ListInput) (*corpus.ListResult, error)
	GetByIDFunc func(ctx context.Context, entryID uuid.UUID) (*domain.CorpusEntry, error)
	UpdateFunc  func(ctx context.Context, input corpus.UpdateInput) (*domain.CorpusEntry, error)
	DeleteFunc  func(ctx context.Context, entryID uuid.UUID) error
	StatsFunc   func(ctx context.Context) (*corpus.StatsResult, error)
	AnalyzeFunc func(ctx context.Context, text string) (*ai.AnalysisResult, error)
}

func (m *corpusServiceMock) Ingest(ctx context.Context, input corpus.IngestInput) (*domain.CorpusEntry, error) {
	return m.IngestFunc(ctx, input)
}

func (m *corpusServiceMock) List(ctx context.Context, input corpus.ListInput) (*corpus.ListResult, error) {
	return m.ListFunc(ctx, input)
}

func (m *corpusServiceMock) GetByID(ctx context.Context, entryID uuid.UUID) (*domain.CorpusEntry, error) {
	return m.GetByIDFunc(ctx, entryID)
}

func (m *corpusServiceMock) Update(ctx context.Context, input corpus.UpdateInput) (*domain.CorpusEntry, error) {
	return m.UpdateFunc(ctx, input)
}

func (m *corpusServiceMock) Delete(ctx context.Context, entryID uuid.UUID) error {
	return m.DeleteFunc(ctx, entryID)
}

func (m *corpusServiceMock) Stats(ctx context.Context) (*corpus.StatsResult, error) {
	return m.StatsFunc(ctx)
}

func (m *corpusServiceMock) Analyze(ctx context.Context, text string) (*ai.AnalysisResult, error) {
	return m.AnalyzeFunc(ctx, text)
}

func TestCorpusCreate_LegacyThemesPassedThrough(t *testing.T) {
	t.Parallel()

	svc := &corpusServiceMock{
		IngestFunc: func(ctx context.Context, input corpus.IngestInput) (*domain.CorpusEntry, error) {
			themes, ok := input.Themes.([]any)
			if !ok || len(themes) != 2 {
				t.Errorf("themes = %#v, want legacy array of 2", input.Themes)
			}
			return &domain.CorpusEntry{
				ID:     uuid.New(),
				Title:  input.Title,
				Themes: domain.NormalizeThemes(input.Themes),
			}, nil
		},
	}
	h := NewCorpusHandler(svc, testLogger())

	body := `{"title":"t","content":"c","themes":["Environment","Science"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/corpus", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp corpusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Themes.Primary != "Environment" {
		t.Errorf("primary theme = %q", resp.Themes.Primary)
	}
}

func TestCorpusGet_InvalidID(t *testing.T) {
	t.Parallel()

	h := NewCorpusHandler(&corpusServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/corpus/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCorpusGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &corpusServiceMock{
		GetByIDFunc: func(ctx context.Context, entryID uuid.UUID) (*domain.CorpusEntry, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewCorpusHandler(svc, testLogger())

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/api/corpus/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCorpusCreate_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := &corpusServiceMock{
		IngestFunc: func(ctx context.Context, input corpus.IngestInput) (*domain.CorpusEntry, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewCorpusHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/corpus", strings.NewReader(`{"content":"c"}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestCorpusCreate_ValidationError(t *testing.T) {
	t.Parallel()

	svc := &corpusServiceMock{
		IngestFunc: func(ctx context.Context, input corpus.IngestInput) (*domain.CorpusEntry, error) {
			return nil, domain.NewValidationError("content", "must not be empty")
		},
	}
	h := NewCorpusHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/corpus", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCorpusAnalyze_ProviderUnavailable(t *testing.T) {
	t.Parallel()

	svc := &corpusServiceMock{
		AnalyzeFunc: func(ctx context.Context, text string) (*ai.AnalysisResult, error) {
			return nil, ai.ErrProviderUnavailable
		},
	}
	h := NewCorpusHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/corpus/analyze", strings.NewReader(`{"text":"some text"}`))
	rec := httptest.NewRecorder()

	h.Analyze(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestCorpusList_QueryParams(t *testing.T) {
	t.Parallel()

	svc := &corpusServiceMock{
		ListFunc: func(ctx context.Context, input corpus.ListInput) (*corpus.ListResult, error) {
			if input.Page != 2 || input.Limit == nil || *input.Limit != 5 || input.Theme != "Technology" {
				t.Errorf("input = %+v", input)
			}
			return &corpus.ListResult{
				Entries:    []*domain.CorpusEntry{},
				Pagination: corpus.Pagination{Page: 2, Limit: 5, Total: 11, TotalPages: 3},
			}, nil
		},
	}
	h := NewCorpusHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/corpus?page=2&limit=5&theme=Technology", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp corpusListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Pagination.TotalPages != 3 {
		t.Errorf("total pages = %d", resp.Pagination.TotalPages)
	}
}

func TestCorpusList_LimitPresence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		want   *int
	}{
		{"absent limit stays nil", "/api/corpus", nil},
		{"explicit zero survives parsing", "/api/corpus?limit=0", new(int)},
		{"unparsable limit counts as absent", "/api/corpus?limit=abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &corpusServiceMock{
				ListFunc: func(ctx context.Context, input corpus.ListInput) (*corpus.ListResult, error) {
					switch {
					case tt.want == nil && input.Limit != nil:
						t.Errorf("limit = %d, want nil", *input.Limit)
					case tt.want != nil && (input.Limit == nil || *input.Limit != *tt.want):
						t.Errorf("limit = %v, want %d", input.Limit, *tt.want)
					}
					return &corpus.ListResult{Entries: []*domain.CorpusEntry{}}, nil
				},
			}
			h := NewCorpusHandler(svc, testLogger())

			rec := httptest.NewRecorder()
			h.List(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
		})
	}
}

func TestCorpusThemes_ReturnsCatalog(t *testing.T) {
	t.Parallel()

	h := NewCorpusHandler(&corpusServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/corpus/themes", nil)
	rec := httptest.NewRecorder()

	h.Themes(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp map[string][]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp["themes"]) != 15 {
		t.Errorf("themes = %d, want 15", len(resp["themes"]))
	}
}
