package model

// ErrorResponse represents the uniform error body returned by the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Standard error codes for domain errors
const (
	ErrCodeInvalidJSON   = "INVALID_JSON"
	ErrCodeMissingField  = "MISSING_FIELD"
	ErrCodeInvalidPrice  = "INVALID_PRICE"
	ErrCodeNoFields      = "NO_FIELDS"
	ErrCodeItemNotFound  = "ITEM_NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
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
	ErrInvalidJSON  = NewDomainError(ErrCodeInvalidJSON, "Invalid request body")
	ErrMissingField = NewDomainError(ErrCodeMissingField, "Missing required fields")
	ErrInvalidPrice = NewDomainError(ErrCodeInvalidPrice, "Invalid price value")
	ErrNoFields     = NewDomainError(ErrCodeNoFields, "No fields to update")
	ErrItemNotFound = NewDomainError(ErrCodeItemNotFound, "Item not found")
)
