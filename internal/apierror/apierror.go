// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// Error kinds surfaced to clients. Handlers map service-level error types to
// one of these so callers can branch without parsing the detail string.
const (
	KindValidation        = "validation_error"
	KindInsufficientStock = "insufficient_stock"
	KindInvalidPeriod     = "invalid_period"
	KindNotFound          = "not_found"
	KindInternal          = "internal_error"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Kind   string `json:"kind,omitempty"`
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func WithKind(kind, msg string) *APIError {
	return &APIError{Kind: kind, Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Kind   string            `json:"kind"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Kind: KindValidation, Detail: "validation failed", Fields: fields}
}
