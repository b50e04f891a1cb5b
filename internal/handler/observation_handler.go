package handler

import (
	"encoding/json"
	"net/http"

	"price-scout/internal/model"
	"price-scout/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ObservationHandler handles observation-related HTTP requests.
type ObservationHandler struct {
	service service.ObservationService
	logger  zerolog.Logger
}

// NewObservationHandler creates a new observation handler.
func NewObservationHandler(service service.ObservationService, logger zerolog.Logger) *ObservationHandler {
	return &ObservationHandler{
		service: service,
		logger:  logger.With().Str("handler", "observation").Logger(),
	}
}

// Collection handles GET and POST /api/observations requests. GET
// accepts an optional ?category=<uuid> filter.
func (h *ObservationHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getAll(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *ObservationHandler) getAll(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	var categoryID *uuid.UUID
	if category := r.URL.Query().Get("category"); category != "" {
		id, err := uuid.Parse(category)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid category parameter", h.logger)
			return
		}
		categoryID = &id
	}

	observations, err := h.service.GetAll(r.Context(), session.UserID, categoryID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, observations)
}

func (h *ObservationHandler) create(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	var req model.ObservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	observation, err := h.service.Create(r.Context(), session.UserID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, observation)
}

// Cheapest handles GET /api/observations/cheapest?category=<uuid>
// requests. A 204 response means the category has no observation with a
// computable unit price yet.
func (h *ObservationHandler) Cheapest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	session, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	categoryID, err := uuid.Parse(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "category parameter is required", h.logger)
		return
	}

	cheapest, err := h.service.GetCheapest(r.Context(), session.UserID, categoryID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if cheapest == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, cheapest)
}

// ByID handles PUT and DELETE /api/observations/{id} requests.
func (h *ObservationHandler) ByID(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	observationID, err := pathID(r.URL.Path, "/api/observations/")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid observation ID format", h.logger)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req model.ObservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
			return
		}

		observation, err := h.service.Update(r.Context(), session.UserID, observationID, &req)
		if err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, observation)

	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), session.UserID, observationID); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
	}
}
