package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/ai"
	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/internal/service/corpus"
)

// corpusService defines the minimal interface needed by CorpusHandler.
type corpusService interface {
	Ingest(ctx context.Context, input corpus.IngestInput) (*domain.CorpusEntry, error)
	List(ctx context.Context, input corpus.ListInput) (*corpus.ListResult, error)
	GetByID(ctx context.Context, entryID uuid.UUID) (*domain.CorpusEntry, error)
	Update(ctx context.Context, input corpus.UpdateInput) (*domain.CorpusEntry, error)
	Delete(ctx context.Context, entryID uuid.UUID) error
	Stats(ctx context.Context) (*corpus.StatsResult, error)
	Analyze(ctx context.Context, text string) (*ai.AnalysisResult, error)
}

// CorpusHandler serves corpus REST endpoints.
type CorpusHandler struct {
	svc corpusService
	log *slog.Logger
}

// NewCorpusHandler creates a CorpusHandler.
func NewCorpusHandler(svc corpusService, logger *slog.Logger) *CorpusHandler {
	return &CorpusHandler{svc: svc, log: logger.With("handler", "corpus")}
}

type fileInfoRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// createCorpusRequest accepts both analysis-pipeline output and raw user
// submissions. Themes stays raw until the service normalizes its shape.
type createCorpusRequest struct {
	Title              string                  `json:"title"`
	Content            string                  `json:"content"`
	RawText            string                  `json:"rawText"`
	Translation        string                  `json:"translation"`
	Summary            string                  `json:"summary"`
	Themes             json.RawMessage         `json:"themes"`
	Tags               []string                `json:"tags"`
	Vocabulary         []domain.VocabularyItem `json:"vocabulary"`
	Opinion            *ai.OpinionAnalysis     `json:"opinion"`
	FileInfo           *fileInfoRequest        `json:"fileInfo"`
	PersonalReflection string                  `json:"personalReflection"`
}

type updateCorpusRequest struct {
	Title       *string                  `json:"title"`
	Content     *string                  `json:"content"`
	Translation *string                  `json:"translation"`
	Summary     *string                  `json:"summary"`
	Themes      json.RawMessage          `json:"themes"`
	Tags        *[]string                `json:"tags"`
	Vocabulary  *[]domain.VocabularyItem `json:"vocabulary"`
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type corpusResponse struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Content     string                  `json:"content"`
	Translation string                  `json:"translation"`
	Summary     string                  `json:"summary"`
	Themes      domain.Themes           `json:"themes"`
	Tags        []string                `json:"tags"`
	Vocabulary  []domain.VocabularyItem `json:"vocabulary"`
	Metadata    domain.FileMetadata     `json:"metadata"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

type paginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type corpusListResponse struct {
	Entries    []corpusResponse   `json:"entries"`
	Pagination paginationResponse `json:"pagination"`
}

type themeAggregateResponse struct {
	Theme           string `json:"theme"`
	EntryCount      int    `json:"entryCount"`
	VocabularyCount int    `json:"vocabularyCount,omitempty"`
}

type corpusStatsResponse struct {
	Total           int                      `json:"total"`
	ByTheme         []themeAggregateResponse `json:"byTheme"`
	TotalVocabulary int                      `json:"totalVocabulary"`
}

// Create handles POST /api/corpus.
func (h *CorpusHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCorpusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := corpus.IngestInput{
		Title:              req.Title,
		Content:            req.Content,
		RawText:            req.RawText,
		Translation:        req.Translation,
		Summary:            req.Summary,
		Themes:             decodeRaw(req.Themes),
		Tags:               req.Tags,
		Vocabulary:         req.Vocabulary,
		Opinion:            req.Opinion,
		PersonalReflection: req.PersonalReflection,
	}
	if req.FileInfo != nil {
		input.FileInfo = &corpus.FileInfo{
			Name: req.FileInfo.Name,
			Type: req.FileInfo.Type,
			Size: req.FileInfo.Size,
		}
	}

	created, err := h.svc.Ingest(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCorpusResponse(created))
}

// List handles GET /api/corpus?page=1&limit=20&theme=...&search=...
func (h *CorpusHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.svc.List(r.Context(), corpus.ListInput{
		Page:   queryInt(q.Get("page")),
		Limit:  queryIntPtr(q.Get("limit")),
		Theme:  q.Get("theme"),
		Search: q.Get("search"),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	entries := make([]corpusResponse, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, toCorpusResponse(e))
	}

	writeJSON(w, http.StatusOK, corpusListResponse{
		Entries: entries,
		Pagination: paginationResponse{
			Page:       result.Pagination.Page,
			Limit:      result.Pagination.Limit,
			Total:      result.Pagination.Total,
			TotalPages: result.Pagination.TotalPages,
		},
	})
}

// Get handles GET /api/corpus/{id}.
func (h *CorpusHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	entry, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCorpusResponse(entry))
}

// Update handles PUT /api/corpus/{id}.
func (h *CorpusHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req updateCorpusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), corpus.UpdateInput{
		EntryID:     id,
		Title:       req.Title,
		Content:     req.Content,
		Translation: req.Translation,
		Summary:     req.Summary,
		Themes:      decodeRaw(req.Themes),
		Tags:        req.Tags,
		Vocabulary:  req.Vocabulary,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCorpusResponse(updated))
}

// Delete handles DELETE /api/corpus/{id}.
func (h *CorpusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Stats handles GET /api/corpus/stats.
func (h *CorpusHandler) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	byTheme := make([]themeAggregateResponse, 0, len(result.ByTheme))
	for _, a := range result.ByTheme {
		byTheme = append(byTheme, themeAggregateResponse{
			Theme:           a.Theme,
			EntryCount:      a.EntryCount,
			VocabularyCount: a.VocabularyCount,
		})
	}

	writeJSON(w, http.StatusOK, corpusStatsResponse{
		Total:           result.Total,
		ByTheme:         byTheme,
		TotalVocabulary: result.TotalVocabulary,
	})
}

// Analyze handles POST /api/corpus/analyze. It runs the AI pipeline
// without persisting anything.
func (h *CorpusHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Analyze(r.Context(), req.Text)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Themes handles GET /api/corpus/themes.
func (h *CorpusHandler) Themes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"themes": ai.PredefinedThemes()})
}

func toCorpusResponse(e *domain.CorpusEntry) corpusResponse {
	return corpusResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Content:     e.Content,
		Translation: e.Translation,
		Summary:     e.Summary,
		Themes:      e.Themes,
		Tags:        e.Tags,
		Vocabulary:  e.Vocabulary,
		Metadata:    e.Metadata,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// decodeRaw turns a raw JSON fragment into the loosely typed value the
// theme normalizer expects. Absent and malformed fragments become nil.
func decodeRaw(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func queryInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// queryIntPtr distinguishes an absent parameter from an explicit value.
// Unparsable values count as absent, matching the lenient clamp semantics.
func queryIntPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
