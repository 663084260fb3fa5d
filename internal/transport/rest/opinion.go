package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/internal/service/opinion"
)

// opinionService defines the minimal interface needed by OpinionHandler.
type opinionService interface {
	List(ctx context.Context, input opinion.ListInput) (*opinion.ListResult, error)
	GetByID(ctx context.Context, opinionID uuid.UUID) (*domain.OpinionEntry, error)
	Update(ctx context.Context, input opinion.UpdateInput) (*domain.OpinionEntry, error)
	Delete(ctx context.Context, opinionID uuid.UUID) error
	Stats(ctx context.Context) (*opinion.StatsResult, error)
}

// OpinionHandler serves opinion REST endpoints.
type OpinionHandler struct {
	svc opinionService
	log *slog.Logger
}

// NewOpinionHandler creates an OpinionHandler.
func NewOpinionHandler(svc opinionService, logger *slog.Logger) *OpinionHandler {
	return &OpinionHandler{svc: svc, log: logger.With("handler", "opinion")}
}

type updateOpinionRequest struct {
	Content            *string   `json:"content"`
	Theme              *string   `json:"theme"`
	SubThemes          *[]string `json:"subThemes"`
	Tags               *[]string `json:"tags"`
	SupportingFacts    *[]string `json:"supportingFacts"`
	CriticalQuestion   *string   `json:"criticalQuestion"`
	Counterargument    *string   `json:"counterargument"`
	PersonalReflection *string   `json:"personalReflection"`
}

type opinionResponse struct {
	ID                 string    `json:"id"`
	SourceID           string    `json:"sourceId"`
	Content            string    `json:"content"`
	Theme              string    `json:"theme"`
	SubThemes          []string  `json:"subThemes"`
	Tags               []string  `json:"tags"`
	SupportingFacts    []string  `json:"supportingFacts"`
	CriticalQuestion   string    `json:"criticalQuestion"`
	Counterargument    string    `json:"counterargument"`
	PersonalReflection string    `json:"personalReflection"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type opinionListResponse struct {
	Entries    []opinionResponse  `json:"entries"`
	Pagination paginationResponse `json:"pagination"`
}

type opinionStatsResponse struct {
	Total   int                      `json:"total"`
	ByTheme []themeAggregateResponse `json:"byTheme"`
}

// List handles GET /api/opinions?page=1&limit=20&theme=...
func (h *OpinionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.svc.List(r.Context(), opinion.ListInput{
		Page:  queryInt(q.Get("page")),
		Limit: queryIntPtr(q.Get("limit")),
		Theme: q.Get("theme"),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	entries := make([]opinionResponse, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, toOpinionResponse(e))
	}

	writeJSON(w, http.StatusOK, opinionListResponse{
		Entries: entries,
		Pagination: paginationResponse{
			Page:       result.Pagination.Page,
			Limit:      result.Pagination.Limit,
			Total:      result.Pagination.Total,
			TotalPages: result.Pagination.TotalPages,
		},
	})
}

// Get handles GET /api/opinions/{id}.
func (h *OpinionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	op, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toOpinionResponse(op))
}

// Update handles PUT /api/opinions/{id}.
func (h *OpinionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req updateOpinionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), opinion.UpdateInput{
		OpinionID:          id,
		Content:            req.Content,
		Theme:              req.Theme,
		SubThemes:          req.SubThemes,
		Tags:               req.Tags,
		SupportingFacts:    req.SupportingFacts,
		CriticalQuestion:   req.CriticalQuestion,
		Counterargument:    req.Counterargument,
		PersonalReflection: req.PersonalReflection,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toOpinionResponse(updated))
}

// Delete handles DELETE /api/opinions/{id}.
func (h *OpinionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Stats handles GET /api/opinions/stats.
func (h *OpinionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	byTheme := make([]themeAggregateResponse, 0, len(result.ByTheme))
	for _, a := range result.ByTheme {
		byTheme = append(byTheme, themeAggregateResponse{
			Theme:      a.Theme,
			EntryCount: a.EntryCount,
		})
	}

	writeJSON(w, http.StatusOK, opinionStatsResponse{
		Total:   result.Total,
		ByTheme: byTheme,
	})
}

func toOpinionResponse(e *domain.OpinionEntry) opinionResponse {
	return opinionResponse{
		ID:                 e.ID.String(),
		SourceID:           e.SourceID.String(),
		Content:            e.Content,
		Theme:              e.Theme,
		SubThemes:          e.SubThemes,
		Tags:               e.Tags,
		SupportingFacts:    e.SupportingFacts,
		CriticalQuestion:   e.CriticalQuestion,
		Counterargument:    e.Counterargument,
		PersonalReflection: e.PersonalReflection,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
