package api

import "fmt"

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
	ErrorTypeConfiguration  ErrorType = "configuration_error"
	ErrorTypeToken          ErrorType = "token_error"
	ErrorTypeInternal       ErrorType = "internal_error"
)

// APIError is the error envelope returned to clients on failure:
// {"error": <type tag>, "detail": <summary>, "hint": <optional remedy>}.
type APIError struct {
	Type   ErrorType `json:"error"`
	Detail string    `json:"detail,omitempty"`
	Hint   string    `json:"hint,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Detail)
}

// NewInvalidRequestError creates an APIError for a request that violates a
// precondition (missing messages, unsupported streaming, bad parameters).
func NewInvalidRequestError(detail string) *APIError {
	return &APIError{Type: ErrorTypeInvalidRequest, Detail: detail}
}

// NewConfigurationError creates an APIError for missing or unusable
// server-side configuration, typically absent upstream credentials.
func NewConfigurationError(detail string) *APIError {
	return &APIError{Type: ErrorTypeConfiguration, Detail: detail}
}

// NewTokenError creates an APIError for a failed service-account token
// exchange.
func NewTokenError(detail string) *APIError {
	return &APIError{Type: ErrorTypeToken, Detail: detail}
}

// NewInternalError creates an APIError for unexpected failures. Detail is a
// string summary only; stack traces never leave the process.
func NewInternalError(detail string) *APIError {
	return &APIError{Type: ErrorTypeInternal, Detail: detail}
}
