package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeCategoryNotFound    = "CATEGORY_NOT_FOUND"
	ErrCodeStoreNotFound       = "STORE_NOT_FOUND"
	ErrCodeObservationNotFound = "OBSERVATION_NOT_FOUND"
	ErrCodeUnknownUnit         = "UNKNOWN_UNIT"
	ErrCodeUnitNotAllowed      = "UNIT_NOT_ALLOWED"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInvalidPackCount    = "INVALID_PACK_COUNT"
	ErrCodeInvalidPrice        = "INVALID_PRICE"
	ErrCodeDuplicateCategory   = "DUPLICATE_CATEGORY"
	ErrCodeCategoryNotEditable = "CATEGORY_NOT_EDITABLE"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCategoryNotFound    = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrStoreNotFound       = NewDomainError(ErrCodeStoreNotFound, "Store not found")
	ErrObservationNotFound = NewDomainError(ErrCodeObservationNotFound, "Observation not found")
	ErrUnknownUnit         = NewDomainError(ErrCodeUnknownUnit, "Unit is not a recognised measurement unit")
	ErrUnitNotAllowed      = NewDomainError(ErrCodeUnitNotAllowed, "Unit is not allowed for this category")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must not be negative")
	ErrInvalidPackCount    = NewDomainError(ErrCodeInvalidPackCount, "Pack count must not be negative")
	ErrInvalidPrice        = NewDomainError(ErrCodeInvalidPrice, "Price must not be negative")
	ErrDuplicateCategory   = NewDomainError(ErrCodeDuplicateCategory, "A category with this value already exists")
	ErrCategoryNotEditable = NewDomainError(ErrCodeCategoryNotEditable, "Only custom categories can be modified")
	ErrForbidden           = NewDomainError(ErrCodeForbidden, "You do not have access to this resource")
)
