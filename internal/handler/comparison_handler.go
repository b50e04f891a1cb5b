package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"price-scout/internal/model"
	"price-scout/internal/service"

	"github.com/rs/zerolog"
)

// ComparisonHandler handles price comparison HTTP requests.
type ComparisonHandler struct {
	service service.ComparisonService
	logger  zerolog.Logger
}

// NewComparisonHandler creates a new comparison handler.
func NewComparisonHandler(service service.ComparisonService, logger zerolog.Logger) *ComparisonHandler {
	return &ComparisonHandler{
		service: service,
		logger:  logger.With().Str("handler", "comparison").Logger(),
	}
}

// Compare handles POST /api/compare requests. A 204 response means
// there was nothing meaningful to compare: the current item's unit
// price is not computable, or no recorded observation in the category
// has one.
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	session, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	result, err := h.service.Compare(r.Context(), session.UserID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// History handles GET /api/comparisons requests with pagination.
func (h *ComparisonHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	session, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid offset parameter", h.logger)
			return
		}
	}

	comparisons, err := h.service.History(r.Context(), session.UserID, limit, offset)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if comparisons == nil {
		comparisons = []model.Comparison{}
	}

	writeJSON(w, http.StatusOK, comparisons)
}

// Stats handles GET /api/comparisons/stats requests.
func (h *ComparisonHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	session, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	stats, err := h.service.Stats(r.Context(), session.UserID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
