package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeInvalidDay      = "INVALID_DAY"
	ErrCodeDishNotFound    = "DISH_NOT_FOUND"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeNoResponses     = "NO_RESPONSES"
	ErrCodeInvalidResponse = "INVALID_RESPONSE"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInternalError   = "INTERNAL_ERROR"
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
	ErrWasteUnbalanced = NewDomainError(ErrCodeValidation, "Prepared should be at least served + wasted.")
	ErrNoResponses     = NewDomainError(ErrCodeNoResponses, "Select at least one response before submitting.")
	ErrDishNotFound    = NewDomainError(ErrCodeDishNotFound, "Dish not found")
	ErrInvalidDay      = NewDomainError(ErrCodeInvalidDay, "Day must be one of Mon, Tue, Wed, Thu, Fri")
	ErrInvalidResponse = NewDomainError(ErrCodeInvalidResponse, "Response must be yes or no")
)

// IsValidation reports whether err is a rejected mutation that should be
// shown to the user as an inline message.
func IsValidation(err error) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == ErrCodeValidation || de.Code == ErrCodeNoResponses
}
