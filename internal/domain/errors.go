package domain

import "errors"

var (
	// Validation errors: the request is rejected before any model call.
	ErrEmptyText      = errors.New("job description text is required")
	ErrInvalidRequest = errors.New("invalid extraction request")

	// Configuration errors: raised while wiring the backend, never per request.
	ErrMissingAPIKey        = errors.New("no API key configured for the LLM provider")
	ErrUnknownProvider      = errors.New("unknown LLM provider")
	ErrBackendNotConfigured = errors.New("LLM backend client is not configured")
)

// IsValidationError reports whether err is a request validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrInvalidRequest)
}

// IsConfigurationError reports whether err is a backend configuration failure.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrMissingAPIKey) ||
		errors.Is(err, ErrUnknownProvider) ||
		errors.Is(err, ErrBackendNotConfigured)
}
