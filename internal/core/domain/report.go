package domain

import (
	"errors"
	"slices"
)

// WriteMode selects what the writer does with computed edits.
type WriteMode int

const (
	// ModePreview renders a diff and leaves files untouched.
	ModePreview WriteMode = iota
	// ModeWrite rewrites files in place.
	ModeWrite
)

// String returns the mode name.
func (m WriteMode) String() string {
	if m == ModeWrite {
		return "write"
	}
	return "preview"
}

// FileChange is the writer's outcome for one file.
type FileChange struct {
	Path     string
	Original []byte
	Updated  []byte
	Diff     string
	Applied  int
	Written  bool
}

// Changed reports whether any edit modified the file content.
func (c FileChange) Changed() bool {
	return string(c.Original) != string(c.Updated)
}

// FileError is a per-file failure collected during a run.
type FileError struct {
	Path string
	Err  error
}

// RunReport aggregates the outcome of a run.
type RunReport struct {
	Files      []string
	Results    []GenerationResult
	Changes    []FileChange
	FileErrors []FileError
}

// AddFileError records a per-file failure.
func (r *RunReport) AddFileError(path string, err error) {
	r.FileErrors = append(r.FileErrors, FileError{Path: path, Err: err})
}

// CacheHits counts results served from the cache.
func (r *RunReport) CacheHits() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() && res.Source == SourceCache {
			n++
		}
	}
	return n
}

// Generated counts results produced by the provider in this run.
func (r *RunReport) Generated() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() && res.Source == SourceLLM {
			n++
		}
	}
	return n
}

// FailedTargets returns the results that carry an error.
func (r *RunReport) FailedTargets() []GenerationResult {
	var failed []GenerationResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// ParseFailures counts files that could not be read or parsed.
func (r *RunReport) ParseFailures() int {
	return r.countFileErrors(func(err error) bool {
		return errors.Is(err, ErrParse) || errors.Is(err, ErrFileRead)
	})
}

// WriteFailures counts files the writer could not update.
func (r *RunReport) WriteFailures() int {
	return r.countFileErrors(func(err error) bool {
		return errors.Is(err, ErrWrite)
	})
}

// CacheReadFailures counts targets whose cache lookup failed.
func (r *RunReport) CacheReadFailures() int {
	n := 0
	for _, res := range r.Results {
		if res.CacheErr != nil {
			n++
		}
	}
	return n
}

// WrittenFiles returns the paths rewritten on disk, sorted.
func (r *RunReport) WrittenFiles() []string {
	var paths []string
	for _, c := range r.Changes {
		if c.Written {
			paths = append(paths, c.Path)
		}
	}
	slices.Sort(paths)
	return paths
}

// HasFailures reports whether any non-fatal failure was recorded.
func (r *RunReport) HasFailures() bool {
	return len(r.FileErrors) > 0 || len(r.FailedTargets()) > 0 || r.CacheReadFailures() > 0
}

func (r *RunReport) countFileErrors(match func(error) bool) int {
	n := 0
	for _, fe := range r.FileErrors {
		if match(fe.Err) {
			n++
		}
	}
	return n
}
