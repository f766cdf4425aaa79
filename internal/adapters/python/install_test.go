package python_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docullim/internal/adapters/python"
	"go.trai.ch/docullim/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestInstaller_Install(t *testing.T) {
	dir := t.TempDir()
	installer := python.NewInstaller()

	path, err := installer.Install(dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docullim", "__init__.py"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, python.MarkerModule(), data)
	assert.Contains(t, string(data), "def docullim(")
}

func TestInstaller_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "docullim", "__init__.py")
	writeFile(t, existing, "# mine\n")

	installer := python.NewInstaller()

	_, err := installer.Install(dir, false)
	require.ErrorIs(t, err, domain.ErrMarkerExists)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))

	_, err = installer.Install(dir, true)
	require.NoError(t, err)
	data, err = os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, python.MarkerModule(), data)
}

func TestMarkerModule_IsScannable(t *testing.T) {
	targets := scan(t, string(python.MarkerModule())+"\n\n@docullim\ndef f():\n    pass\n")
	require.Len(t, targets, 1)
	assert.Equal(t, "f", targets[0].QualifiedName)
}
