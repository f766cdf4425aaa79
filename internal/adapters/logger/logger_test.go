package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docullim/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newLogger(t *testing.T, buf *bytes.Buffer) *logger.Logger {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.SetOutput(buf)
	return lg
}

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := newLogger(t, buf)

	lg.Info("scanning 3 files")
	lg.Warn("no match for pattern")
	lg.Error(os.ErrPermission)

	g := goldie.New(t)
	g.Assert(t, "logger_levels", buf.Bytes())
}

func TestLogger_ErrorNil(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := newLogger(t, buf)

	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := newLogger(t, buf)

	err := zerr.With(zerr.Wrap(errors.New("unexpected token"), "failed to parse source file"), "path", "a.py")
	lg.Error(err)

	g := goldie.New(t)
	g.Assert(t, "logger_error_chain", buf.Bytes())
}

func TestLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := newLogger(t, buf)
	lg.SetJSON(true)

	lg.Error(zerr.With(zerr.New("failed to write documentation"), "path", "b.py"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "failed to write documentation", record["error"])
	assert.Equal(t, "b.py", record["path"])
}

func TestLogger_SetJSONKeepsOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := newLogger(t, buf)

	lg.SetJSON(true)
	lg.Info("hello")
	lg.SetJSON(false)
	lg.Info("world")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.True(t, json.Valid(lines[0]))
	assert.Equal(t, "world", string(lines[1]))
}
