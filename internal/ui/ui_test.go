package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/docullim/internal/ui"
)

func TestColorizeDiff_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	out := ui.NewOutput(&bytes.Buffer{})
	diff := "--- a/x.py\n+++ b/x.py\n@@ -1,2 +1,3 @@\n def f():\n+    \"\"\"Doc.\"\"\"\n     pass\n"

	assert.Equal(t, diff, ui.ColorizeDiff(out, diff))
}

func TestPaint_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	out := ui.NewOutput(&bytes.Buffer{})
	assert.Equal(t, "hello", ui.Paint(out, ui.Green, "hello"))
}
