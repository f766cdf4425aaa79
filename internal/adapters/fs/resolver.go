package fs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileResolver = (*Resolver)(nil)

// Resolver implements ports.FileResolver with doublestar globbing.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ResolveFiles expands each pattern in order. Existing files are taken as-is,
// directories contribute their *.py files and anything else is treated as a glob.
// Paths are reported relative to root when they lie beneath it and each file
// appears once.
func (r *Resolver) ResolveFiles(patterns []string, root string) ([]string, []string, error) {
	var files, unmatched []string
	seen := make(map[string]bool)

	add := func(path string) {
		display := r.display(path, root)
		key := filepath.Clean(path)
		if seen[key] {
			return
		}
		seen[key] = true
		files = append(files, display)
	}

	for _, pattern := range patterns {
		path := pattern
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		if info, err := os.Stat(path); err == nil {
			if !info.IsDir() {
				add(path)
				continue
			}
			n := len(files)
			for file := range r.walker.WalkPython(path) {
				add(file)
			}
			if len(files) == n {
				unmatched = append(unmatched, pattern)
			}
			continue
		}

		if !hasMeta(pattern) {
			unmatched = append(unmatched, pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
		if err != nil {
			return nil, nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "pattern", pattern)
		}
		if len(matches) == 0 {
			unmatched = append(unmatched, pattern)
			continue
		}
		slices.Sort(matches)
		for _, match := range matches {
			add(match)
		}
	}

	return files, unmatched, nil
}

func (r *Resolver) display(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Clean(path)
	}
	return rel
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
