// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/docullim/internal/core/domain"
)

// CompletionRequest is a single prompt sent to a model.
type CompletionRequest struct {
	Prompt      string
	Model       string
	Temperature float64
}

// Provider is a client for a text generation API.
//
//go:generate go run go.uber.org/mock/mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
type Provider interface {
	// Name returns the provider identifier used in errors and logs.
	Name() string

	// Complete sends the prompt and returns the trimmed generated text.
	// Failures are returned as *domain.ProviderError. Implementations do not retry.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ProviderFactory builds the provider selected by the configuration.
type ProviderFactory interface {
	New(ctx context.Context, cfg domain.Config) (Provider, error)
}
