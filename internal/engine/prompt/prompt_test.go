package prompt_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/engine/prompt"
)

func TestTemplate(t *testing.T) {
	prompts := map[string]string{
		"default": "Describe this.",
		"math":    "Describe the math.",
	}

	tests := []struct {
		name    string
		prompts map[string]string
		tag     string
		want    string
		wantErr bool
	}{
		{name: "explicit tag", prompts: prompts, tag: "math", want: "Describe the math."},
		{name: "default tag", prompts: prompts, tag: "default", want: "Describe this."},
		{name: "unknown tag falls back", prompts: prompts, tag: "other", want: "Describe this."},
		{name: "tag without default", prompts: map[string]string{"math": "m"}, tag: "math", want: "m"},
		{name: "no template", prompts: map[string]string{"math": "m"}, tag: "other", wantErr: true},
		{name: "empty map", prompts: nil, tag: "default", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := prompt.Template(tt.prompts, tt.tag)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrConfig))
				assert.True(t, errors.Is(err, domain.ErrMissingPrompt))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Prompts["math"] = "Explain the arithmetic."

	target := domain.Target{
		FilePath:      "calc.py",
		QualifiedName: "add",
		Body:          "def add(a, b):\n    return a + b",
		Tag:           "math",
	}

	got, err := prompt.Build(target, cfg)
	require.NoError(t, err)
	assert.Equal(t, "Explain the arithmetic.\ndef add(a, b):\n    return a + b", got)

	target.Tag = "default"
	got, err = prompt.Build(target, cfg)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPrompt+"\n"+target.Body, got)
}

func TestBuild_MissingTemplate(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Prompts = map[string]string{"math": "m"}

	_, err := prompt.Build(domain.Target{FilePath: "a.py", QualifiedName: "f", Tag: "io"}, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingPrompt))
}
