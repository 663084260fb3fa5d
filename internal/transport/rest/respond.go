package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/ai"
	"github.com/linxiao/corpora/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleError maps domain and provider errors to HTTP statuses. Internal
// detail never reaches the response body.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidID), errors.Is(err, ai.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, ai.ErrRateLimited),
		errors.Is(err, ai.ErrProviderUnavailable),
		errors.Is(err, ai.ErrTimeout):
		writeError(w, http.StatusServiceUnavailable, "analysis service unavailable, try again later")
	case errors.Is(err, ai.ErrProviderAuth):
		log.ErrorContext(r.Context(), "provider auth failure", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "analysis service misconfigured")
	case errors.Is(err, ai.ErrMalformedResponse):
		log.ErrorContext(r.Context(), "provider response unusable", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "analysis service returned an unusable response")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses the {id} path value. A malformed id is a 400, distinct
// from the 404 an unknown id produces.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}
