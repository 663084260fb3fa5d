package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/linxiao/corpora/internal/ai"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// aiToolkit defines the minimal interface needed by ToolsHandler.
type aiToolkit interface {
	ExplainInContext(ctx context.Context, word, sentence string) (string, error)
	Collocations(ctx context.Context, word string) ([]string, error)
	PolishTone(ctx context.Context, sentence, tone string) (string, error)
	CheckLogic(ctx context.Context, sentence, nativeLanguage string) (*ai.LogicCheckResult, error)
}

// ToolsHandler serves the standalone AI writing-tool endpoints.
type ToolsHandler struct {
	toolkit aiToolkit
	log     *slog.Logger
}

// NewToolsHandler creates a ToolsHandler.
func NewToolsHandler(toolkit aiToolkit, logger *slog.Logger) *ToolsHandler {
	return &ToolsHandler{toolkit: toolkit, log: logger.With("handler", "tools")}
}

type explainRequest struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence"`
}

type collocationsRequest struct {
	Word string `json:"word"`
}

type polishRequest struct {
	Sentence string `json:"sentence"`
	Tone     string `json:"tone"`
}

type logicCheckRequest struct {
	Sentence       string `json:"sentence"`
	NativeLanguage string `json:"nativeLanguage"`
}

// ExplainInContext handles POST /ai/context-explain.
func (h *ToolsHandler) ExplainInContext(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuth(w, r) {
		return
	}

	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	explanation, err := h.toolkit.ExplainInContext(r.Context(), req.Word, req.Sentence)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"explanation": explanation})
}

// Collocations handles POST /ai/collocations.
func (h *ToolsHandler) Collocations(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuth(w, r) {
		return
	}

	var req collocationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	collocations, err := h.toolkit.Collocations(r.Context(), req.Word)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"collocations": collocations})
}

// PolishTone handles POST /ai/polish-tone.
func (h *ToolsHandler) PolishTone(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuth(w, r) {
		return
	}

	var req polishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	polished, err := h.toolkit.PolishTone(r.Context(), req.Sentence, req.Tone)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"polished": polished})
}

// CheckLogic handles POST /ai/logic-check.
func (h *ToolsHandler) CheckLogic(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuth(w, r) {
		return
	}

	var req logicCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.toolkit.CheckLogic(r.Context(), req.Sentence, req.NativeLanguage)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ToolsHandler) requireAuth(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	return true
}
