// Package writer places generated docstrings into Python source files.
package writer

import (
	"cmp"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/pmezard/go-difflib/difflib"
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Writer = (*Writer)(nil)

// edit replaces src[start:end] with text.
type edit struct {
	start, end int
	text       string
}

// Writer implements ports.Writer.
type Writer struct {
	hasher ports.Hasher
}

// New creates a new Writer.
func New(hasher ports.Hasher) *Writer {
	return &Writer{hasher: hasher}
}

// Apply edits the file at path with the successful results that belong to it.
func (w *Writer) Apply(ctx context.Context, path string, results []domain.GenerationResult, mode domain.WriteMode) (domain.FileChange, error) {
	change := domain.FileChange{Path: path}

	if err := ctx.Err(); err != nil {
		return change, writeError(path, err)
	}

	original, err := os.ReadFile(path) //nolint:gosec // path comes from the resolved input set
	if err != nil {
		return change, writeError(path, zerr.Wrap(err, "failed to read file"))
	}
	change.Original = original
	change.Updated = original

	var applicable []domain.GenerationResult
	for _, res := range results {
		if res.Target.FilePath != path || !res.OK() || res.Text == "" {
			continue
		}
		if digest := w.hasher.Digest(original); digest != res.Target.FileDigest {
			return change, errors.Join(domain.ErrWrite, zerr.With(zerr.Wrap(domain.ErrStaleSource, ""), "path", path))
		}
		applicable = append(applicable, res)
	}
	if len(applicable) == 0 {
		return change, nil
	}

	newline := lineEnding(original)
	edits := make([]edit, 0, len(applicable))
	for _, res := range applicable {
		edits = append(edits, planEdit(res.Target.Anchor, res.Text, newline))
	}
	updated, err := applyEdits(original, edits)
	if err != nil {
		return change, writeError(path, err)
	}
	change.Updated = updated
	change.Applied = len(edits)

	if !change.Changed() {
		return change, nil
	}

	if mode == domain.ModePreview {
		diff, err := unifiedDiff(path, original, updated)
		if err != nil {
			return change, writeError(path, err)
		}
		change.Diff = diff
		return change, nil
	}

	if err := writeAtomic(path, updated); err != nil {
		return change, writeError(path, err)
	}
	change.Written = true
	return change, nil
}

// planEdit computes the edit that documents one definition.
func planEdit(a domain.DocAnchor, text, newline string) edit {
	literal := docstringLiteral(text, a.Indent, newline)

	switch {
	case a.Inline:
		end := a.BodyStart
		suffix := newline + a.Indent
		if a.HasDocstring() {
			end = a.DocEnd
			suffix = ""
		}
		return edit{start: a.HeaderEnd, end: end, text: newline + a.Indent + literal + suffix}
	case a.HasDocstring():
		return edit{start: a.DocStart, end: a.DocEnd, text: literal}
	default:
		return edit{start: a.BodyStart, end: a.BodyStart, text: literal + newline + a.Indent}
	}
}

// applyEdits applies edits from the end of the file backwards so earlier offsets stay valid.
func applyEdits(src []byte, edits []edit) ([]byte, error) {
	slices.SortStableFunc(edits, func(a, b edit) int {
		return cmp.Compare(b.start, a.start)
	})

	out := slices.Clone(src)
	limit := len(src)
	for _, e := range edits {
		if e.start < 0 || e.end < e.start || e.end > limit {
			return nil, zerr.With(zerr.New("edit out of range"), "offset", e.start)
		}
		out = slices.Concat(out[:e.start], []byte(e.text), out[e.end:])
		limit = e.start
	}
	return out, nil
}

func unifiedDiff(path string, original, updated []byte) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(updated)),
		FromFile: "a/" + filepath.ToSlash(path),
		ToFile:   "b/" + filepath.ToSlash(path),
		Context:  3,
	})
	if err != nil {
		return "", zerr.Wrap(err, "failed to render diff")
	}
	return diff, nil
}

// writeAtomic replaces path with data through a synced temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.Wrap(err, "failed to stat file")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".docullim-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to set file mode")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(err, "failed to replace file")
	}
	return nil
}

func writeError(path string, err error) error {
	return errors.Join(domain.ErrWrite, zerr.With(err, "path", path))
}
