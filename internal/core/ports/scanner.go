package ports

import (
	"context"

	"go.trai.ch/docullim/internal/core/domain"
)

// Scanner finds marked definitions in a source file without executing it.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type Scanner interface {
	// Scan returns the marked targets of the file at path in source order.
	// Unreadable files fail with domain.ErrFileRead and invalid ones with domain.ErrParse.
	Scan(ctx context.Context, path string) ([]domain.Target, error)
}

// MarkerInstaller writes the importable marker module into a project.
type MarkerInstaller interface {
	// Install writes the module under dir and returns the written path.
	// An existing module is only replaced when force is set.
	Install(dir string, force bool) (string, error)
}
