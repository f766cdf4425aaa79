// Package provider selects the text generation provider named by the configuration.
package provider

import (
	"context"
	"errors"
	"os"

	"go.trai.ch/docullim/internal/adapters/gemini"
	"go.trai.ch/docullim/internal/adapters/openai"
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProviderFactory = (*Factory)(nil)

// Factory implements ports.ProviderFactory. The API key is read from the
// environment variable named by the configuration when New is called.
type Factory struct {
	getenv func(string) string
}

// NewFactory creates a Factory reading from the process environment.
func NewFactory() *Factory {
	return &Factory{getenv: os.Getenv}
}

// NewFactoryWithEnv creates a Factory reading keys through getenv.
func NewFactoryWithEnv(getenv func(string) string) *Factory {
	return &Factory{getenv: getenv}
}

// New builds the provider for cfg.Provider.
func (f *Factory) New(ctx context.Context, cfg domain.Config) (ports.Provider, error) {
	switch cfg.Provider {
	case domain.ProviderOpenAI, domain.ProviderGemini:
	default:
		return nil, errors.Join(domain.ErrConfig, zerr.With(zerr.Wrap(domain.ErrUnknownProvider, ""), "provider", cfg.Provider))
	}

	key := f.getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingAPIKey, ""), "env", cfg.APIKeyEnv)
	}

	if cfg.Provider == domain.ProviderGemini {
		return gemini.New(ctx, gemini.Options{APIKey: key, BaseURL: cfg.BaseURL, Timeout: cfg.Timeout()})
	}
	return openai.New(openai.Options{APIKey: key, BaseURL: cfg.BaseURL, Timeout: cfg.Timeout()}), nil
}
