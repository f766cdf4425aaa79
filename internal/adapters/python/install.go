package python

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed marker.py
var markerModule []byte

var _ ports.MarkerInstaller = (*Installer)(nil)

// Installer writes the importable docullim marker module.
type Installer struct{}

// NewInstaller creates a new Installer.
func NewInstaller() *Installer {
	return &Installer{}
}

// MarkerModule returns the embedded module source.
func MarkerModule() []byte {
	return markerModule
}

// Install writes docullim/__init__.py under dir.
func (i *Installer) Install(dir string, force bool) (string, error) {
	path := filepath.Join(dir, filepath.FromSlash(domain.MarkerModulePath))

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", zerr.With(zerr.Wrap(domain.ErrMarkerExists, "use --force to overwrite"), "path", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, "failed to stat marker module"), "path", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create marker package"), "path", path)
	}
	if err := os.WriteFile(path, markerModule, 0o644); err != nil { //nolint:gosec // source file meant to be imported
		return "", zerr.With(zerr.Wrap(err, "failed to write marker module"), "path", path)
	}
	return path, nil
}
