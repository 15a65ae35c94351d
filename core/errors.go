package core

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyInput is returned when the content reduces to empty plain text.
// Callers treat it as an idle no-op, not a failure.
var ErrEmptyInput = errors.New("empty input")

// ConfigurationError reports an unknown style id.
type ConfigurationError struct {
	StyleID string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown style id: %q", e.StyleID)
}

func (e *ConfigurationError) StatusCode() int { return http.StatusBadRequest }

// CredentialError reports a missing provider API key.
type CredentialError struct {
	Provider string
	EnvVar   string
}

func (e *CredentialError) Error() string {
	if e.EnvVar == "" {
		return fmt.Sprintf("%s API key not found", e.Provider)
	}
	return fmt.Sprintf("%s API key not found. Please add %s to your environment or .env.local file.", e.Provider, e.EnvVar)
}

func (e *CredentialError) StatusCode() int { return http.StatusServiceUnavailable }

// ProviderError wraps a failed LLM call. Message is the provider's own text
// and is safe to show to the end user.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) StatusCode() int { return http.StatusBadGateway }

// StatusCoder is implemented by errors that map onto an HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// StatusCode returns the HTTP status for err, or 500 when err carries none.
func StatusCode(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
