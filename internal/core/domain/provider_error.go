package domain

import (
	"errors"
	"fmt"
)

// ProviderErrorCategory classifies provider failures so callers can decide whether to retry.
type ProviderErrorCategory string

const (
	// CategoryAuth is an authentication or authorization failure.
	CategoryAuth ProviderErrorCategory = "auth"
	// CategoryRateLimit means the provider throttled the request.
	CategoryRateLimit ProviderErrorCategory = "rate_limit"
	// CategoryServer is a 5xx response from the provider.
	CategoryServer ProviderErrorCategory = "server"
	// CategoryBadRequest is a 4xx response other than auth and rate limiting.
	CategoryBadRequest ProviderErrorCategory = "bad_request"
	// CategoryMalformedResponse means the provider answered but the payload was unusable.
	CategoryMalformedResponse ProviderErrorCategory = "malformed_response"
	// CategoryTransport is a network-level failure.
	CategoryTransport ProviderErrorCategory = "transport"
	// CategoryCanceled means the request context was canceled or timed out.
	CategoryCanceled ProviderErrorCategory = "canceled"
)

// ProviderError is returned by provider adapters.
type ProviderError struct {
	Provider   string
	Category   ProviderErrorCategory
	StatusCode int
	Message    string
	Err        error
}

// NewProviderError creates a ProviderError.
func NewProviderError(provider string, category ProviderErrorCategory, status int, msg string, err error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Category:   category,
		StatusCode: status,
		Message:    msg,
		Err:        err,
	}
}

// Error implements error.
func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s provider error (%s", e.Provider, e.Category)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(", status %d", e.StatusCode)
	}
	msg += ")"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the same request may succeed.
func (e *ProviderError) Retryable() bool {
	switch e.Category {
	case CategoryRateLimit, CategoryServer, CategoryTransport:
		return true
	default:
		return false
	}
}

// CategoryForStatus maps an HTTP status code to a category.
func CategoryForStatus(status int) ProviderErrorCategory {
	switch {
	case status == 401 || status == 403:
		return CategoryAuth
	case status == 429:
		return CategoryRateLimit
	case status >= 500:
		return CategoryServer
	case status >= 400:
		return CategoryBadRequest
	default:
		return CategoryMalformedResponse
	}
}

// AsProviderError extracts a ProviderError from an error chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
