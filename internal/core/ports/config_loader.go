package ports

import "go.trai.ch/docullim/internal/core/domain"

// ConfigLoader defines the interface for loading the run configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration for a run started in cwd.
	// An empty path means the default config file in cwd, which may be absent.
	// Overrides are applied before validation.
	Load(cwd, path string, overrides domain.Overrides) (*domain.Config, error)
}
