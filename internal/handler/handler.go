package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"price-scout/internal/auth"
	"price-scout/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status, error code
// and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a service error to an HTTP response. Domain
// errors carry their code and message to the client; anything else is an
// opaque internal error.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	status := http.StatusBadRequest
	switch domainErr.Code {
	case model.ErrCodeCategoryNotFound,
		model.ErrCodeStoreNotFound,
		model.ErrCodeObservationNotFound:
		status = http.StatusNotFound
	case model.ErrCodeForbidden, model.ErrCodeCategoryNotEditable:
		status = http.StatusForbidden
	case model.ErrCodeUnauthorised:
		status = http.StatusUnauthorized
	case model.ErrCodeDuplicateCategory:
		status = http.StatusConflict
	case model.ErrCodeInternalError:
		status = http.StatusInternalServerError
	}

	writeError(w, status, domainErr.Code, domainErr.Message, logger)
}

// requireSession extracts the authenticated session from the request
// context. The auth middleware installs it for every /api route; a
// missing session means the request bypassed the middleware.
func requireSession(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (*auth.Session, bool) {
	session, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", logger)
		return nil, false
	}
	return session, true
}

// pathID parses the UUID that follows prefix in the request path.
func pathID(path, prefix string) (uuid.UUID, error) {
	if len(path) <= len(prefix) {
		return uuid.Nil, errors.New("missing ID in path")
	}
	return uuid.Parse(path[len(prefix):])
}
