package logger_test

import (
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/docullim/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	sentinel := zerr.New("failed to parse source file")

	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "zerr chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
			wantMetadata: []map[string]any{nil, nil, nil},
		},
		{
			name:         "zerr metadata",
			err:          zerr.With(zerr.With(zerr.New("base error"), "key1", "value1"), "key2", 42),
			wantMessages: []string{"base error"},
			wantMetadata: []map[string]any{{"key1": "value1", "key2": 42}},
		},
		{
			name:         "metadata on standard error",
			err:          zerr.With(errors.New("disk full"), "path", "x.py"),
			wantMessages: []string{"disk full"},
			wantMetadata: []map[string]any{{"path": "x.py"}},
		},
		{
			name:         "joined sentinel",
			err:          errors.Join(sentinel, zerr.With(zerr.Wrap(errors.New("line 3"), "syntax error"), "path", "bad.py")),
			wantMessages: []string{"failed to parse source file", "syntax error", "line 3"},
			wantMetadata: []map[string]any{nil, {"path": "bad.py"}, nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			assert.Len(t, entries, len(tt.wantMessages))
			for i, want := range tt.wantMessages {
				assert.Equal(t, want, entries[i].Message, "message at %d", i)
				assert.Equal(t, tt.wantMetadata[i], entries[i].Metadata, "metadata at %d", i)
			}
		})
	}

	assert.Empty(t, logger.CollectErrorEntries(nil))
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name       string
		entries    []logger.ErrorEntry
		goldenName string
	}{
		{
			name:       "single",
			entries:    []logger.ErrorEntry{{Message: "single error"}},
			goldenName: "format_single",
		},
		{
			name:       "caused by",
			entries:    []logger.ErrorEntry{{Message: "outer"}, {Message: "inner"}, {Message: "root"}},
			goldenName: "format_caused_by",
		},
		{
			name: "metadata sorted",
			entries: []logger.ErrorEntry{
				{Message: "error", Metadata: map[string]any{"zebra": "z", "alpha": "a"}},
			},
			goldenName: "format_metadata_sorted",
		},
		{
			name: "metadata on cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause", Metadata: map[string]any{"tag": "api"}},
			},
			goldenName: "format_metadata_on_cause",
		},
		{
			name:       "multiline",
			entries:    []logger.ErrorEntry{{Message: "line1\nline2"}},
			goldenName: "format_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := goldie.New(t)
			g.Assert(t, tt.goldenName, []byte(logger.FormatErrorEntries(tt.entries)))
		})
	}

	assert.Empty(t, logger.FormatErrorEntries(nil))
}
