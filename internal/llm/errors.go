package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ProviderErrorKind classifies failures of the backend call itself.
type ProviderErrorKind string

const (
	// TransportFailure covers network errors and unexpected server errors.
	TransportFailure ProviderErrorKind = "transport_failure"
	// AuthFailure means the backend rejected the credential.
	AuthFailure ProviderErrorKind = "auth_failure"
	// RateLimited means the backend throttled the call.
	RateLimited ProviderErrorKind = "rate_limited"
)

// ProviderError is returned when the underlying backend call cannot
// complete. The core never retries these; retry policy belongs to the
// harness.
type ProviderError struct {
	Provider   string
	Kind       ProviderErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Provider, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError classifies a backend failure by HTTP status code.
func NewProviderError(provider string, statusCode int, message string, err error) *ProviderError {
	kind := TransportFailure
	switch statusCode {
	case 401, 403:
		kind = AuthFailure
	case 429:
		kind = RateLimited
	}
	return &ProviderError{
		Provider:   provider,
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// GenerationError is returned when a backend's response, after best-effort
// extraction, does not structurally conform to the requested schema.
type GenerationError struct {
	Provider string
	Problems []string
	// Raw is the response text that failed to conform, kept so a failure
	// can be reproduced without re-invoking the provider.
	Raw string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: schema violation: %s", e.Provider, strings.Join(e.Problems, "; "))
}

// UnknownProviderError is returned by Registry.New for unregistered names.
type UnknownProviderError struct {
	Provider string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q", e.Provider)
}

// IsSchemaViolation reports whether err is a GenerationError.
func IsSchemaViolation(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsAuthFailure reports whether err is a ProviderError with kind AuthFailure.
func IsAuthFailure(err error) bool {
	var provErr *ProviderError
	return errors.As(err, &provErr) && provErr.Kind == AuthFailure
}

// IsRateLimited reports whether err is a ProviderError with kind RateLimited.
func IsRateLimited(err error) bool {
	var provErr *ProviderError
	return errors.As(err, &provErr) && provErr.Kind == RateLimited
}
