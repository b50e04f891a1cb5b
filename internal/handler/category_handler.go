package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"price-scout/internal/model"
	"price-scout/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// Collection handles GET and POST /api/categories requests.
func (h *CategoryHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getAll(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *CategoryHandler) getAll(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	categories, err := h.service.GetAll(r.Context(), session.UserID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) create(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	category, err := h.service.Create(r.Context(), session.UserID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// ExtendUnits handles POST /api/categories/{id}/units requests.
func (h *CategoryHandler) ExtendUnits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	session, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	// Expecting path: /api/categories/{id}/units
	rest := strings.TrimPrefix(r.URL.Path, "/api/categories/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "units" {
		writeError(w, http.StatusNotFound, model.ErrCodeCategoryNotFound, "not found", h.logger)
		return
	}

	categoryID, err := uuid.Parse(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid category ID format", h.logger)
		return
	}

	var req model.UnitExtensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	category, err := h.service.ExtendUnits(r.Context(), session.UserID, categoryID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, category)
}
