package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docullim/internal/adapters/fs"
)

// writeTree creates the given files (relative paths) under root.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o600))
	}
}

func TestWalker_WalkPython(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"main.py",
		"README.md",
		"pkg/util.py",
		"pkg/__pycache__/util.cpython-312.py",
		".git/hooks/pre-commit.py",
		".docullim/cache.py",
		"venv/lib/site.py",
		"env2/lib/site.py",
		"env2/pyvenv.cfg",
	)

	got := slices.Collect(fs.NewWalker().WalkPython(root))
	for i := range got {
		rel, err := filepath.Rel(root, got[i])
		require.NoError(t, err)
		got[i] = filepath.ToSlash(rel)
	}

	assert.Equal(t, []string{"main.py", "pkg/util.py"}, got)
}

func TestResolver_ResolveFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"a.py",
		"b.py",
		"notes.txt",
		"src/app/models.py",
		"src/app/views.py",
		"src/tools/cli.py",
	)

	resolver := fs.NewResolver(fs.NewWalker())

	tests := []struct {
		name      string
		patterns  []string
		want      []string
		unmatched []string
	}{
		{
			name:     "literal file",
			patterns: []string{"notes.txt"},
			want:     []string{"notes.txt"},
		},
		{
			name:     "simple glob",
			patterns: []string{"*.py"},
			want:     []string{"a.py", "b.py"},
		},
		{
			name:     "doublestar glob",
			patterns: []string{"src/**/*.py"},
			want:     []string{"src/app/models.py", "src/app/views.py", "src/tools/cli.py"},
		},
		{
			name:     "directory",
			patterns: []string{"src/app"},
			want:     []string{"src/app/models.py", "src/app/views.py"},
		},
		{
			name:     "duplicates collapse in first-seen order",
			patterns: []string{"b.py", "*.py", "./a.py"},
			want:     []string{"b.py", "a.py"},
		},
		{
			name:      "unmatched patterns are reported",
			patterns:  []string{"missing.py", "*.rs", "a.py"},
			want:      []string{"a.py"},
			unmatched: []string{"missing.py", "*.rs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, unmatched, err := resolver.ResolveFiles(tt.patterns, root)
			require.NoError(t, err)

			for i := range files {
				files[i] = filepath.ToSlash(files[i])
			}
			assert.Equal(t, tt.want, files)
			assert.Equal(t, tt.unmatched, unmatched)
		})
	}
}

func TestResolver_BadPattern(t *testing.T) {
	root := t.TempDir()
	resolver := fs.NewResolver(fs.NewWalker())

	_, _, err := resolver.ResolveFiles([]string{"src/[.py"}, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to glob path")
}

func TestResolver_AbsolutePathOutsideRoot(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	writeTree(t, other, "ext.py")

	resolver := fs.NewResolver(fs.NewWalker())
	files, unmatched, err := resolver.ResolveFiles([]string{filepath.Join(other, "ext.py")}, root)
	require.NoError(t, err)
	assert.Empty(t, unmatched)
	assert.Equal(t, []string{filepath.Join(other, "ext.py")}, files)
}
