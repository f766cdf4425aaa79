package ports

import (
	"context"

	"go.trai.ch/docullim/internal/core/domain"
)

// Writer places generated docstrings into source files.
//
//go:generate go run go.uber.org/mock/mockgen -source=writer.go -destination=mocks/mock_writer.go -package=mocks
type Writer interface {
	// Apply edits the file at path with every successful result that belongs to it.
	// In preview mode the file is left untouched and the change carries a diff.
	Apply(ctx context.Context, path string, results []domain.GenerationResult, mode domain.WriteMode) (domain.FileChange, error)
}
