// Package fs provides file system adapters for resolving, walking and hashing source files.
package fs

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// skippedDirs are never descended into when a directory is given on the command line.
var skippedDirs = map[string]bool{
	".git":          true,
	".jj":           true,
	".hg":           true,
	".docullim":     true,
	"__pycache__":   true,
	"node_modules":  true,
	".venv":         true,
	"venv":          true,
	".tox":          true,
	".nox":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkPython yields every *.py file under root in lexical order, skipping VCS,
// cache and virtualenv directories.
func (w *Walker) WalkPython(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped rather than aborting the walk.
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path != root && w.shouldSkipDir(path, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if !strings.HasSuffix(d.Name(), ".py") {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkipDir reports whether a directory is excluded from walking.
func (w *Walker) shouldSkipDir(path, name string) bool {
	if skippedDirs[name] {
		return true
	}
	// Any virtualenv, whatever its name, carries a pyvenv.cfg.
	if _, err := os.Stat(filepath.Join(path, "pyvenv.cfg")); err == nil {
		return true
	}
	return false
}
