package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docullim/internal/core/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()

	assert.Equal(t, domain.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4", cfg.Model)
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.InDelta(t, 0.5, cfg.Temperature, 1e-9)
	assert.Equal(t, domain.DefaultPrompt, cfg.Prompts[domain.DefaultTag])
	assert.Equal(t, "OPENAI_API_KEY", cfg.APIKeyEnv)
	assert.Equal(t, ".docullim/cache.sqlite", cfg.CachePath())

	cfg.CacheBackend = domain.CacheBackendJSON
	assert.Equal(t, ".docullim/cache.json", cfg.CachePath())
}

func TestConfig_CacheFiles(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.CacheDir = "/work/.docullim"

	files := cfg.CacheFiles()
	assert.Contains(t, files, "/work/.docullim/cache.sqlite")
	assert.Contains(t, files, "/work/.docullim/cache.json")
	for _, f := range files {
		assert.Equal(t, "/work/.docullim", filepath.Dir(f))
	}
}

func TestDefaultAPIKeyEnv(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", domain.DefaultAPIKeyEnv(domain.ProviderOpenAI))
	assert.Equal(t, "GEMINI_API_KEY", domain.DefaultAPIKeyEnv(domain.ProviderGemini))
}

func TestProviderError(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		category  domain.ProviderErrorCategory
		retryable bool
	}{
		{domain.CategoryAuth, false},
		{domain.CategoryRateLimit, true},
		{domain.CategoryServer, true},
		{domain.CategoryBadRequest, false},
		{domain.CategoryMalformedResponse, false},
		{domain.CategoryTransport, true},
		{domain.CategoryCanceled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			err := domain.NewProviderError("openai", tt.category, 0, "", cause)
			assert.Equal(t, tt.retryable, err.Retryable())
			require.ErrorIs(t, err, cause)

			wrapped := errors.Join(errors.New("outer"), err)
			pe, ok := domain.AsProviderError(wrapped)
			require.True(t, ok)
			assert.Equal(t, tt.category, pe.Category)
		})
	}
}

func TestProviderError_Message(t *testing.T) {
	err := domain.NewProviderError("openai", domain.CategoryRateLimit, 429, "slow down", nil)
	assert.Equal(t, "openai provider error (rate_limit, status 429): slow down", err.Error())
}

func TestCategoryForStatus(t *testing.T) {
	assert.Equal(t, domain.CategoryAuth, domain.CategoryForStatus(401))
	assert.Equal(t, domain.CategoryAuth, domain.CategoryForStatus(403))
	assert.Equal(t, domain.CategoryRateLimit, domain.CategoryForStatus(429))
	assert.Equal(t, domain.CategoryServer, domain.CategoryForStatus(503))
	assert.Equal(t, domain.CategoryBadRequest, domain.CategoryForStatus(404))
	assert.Equal(t, domain.CategoryMalformedResponse, domain.CategoryForStatus(200))
}

func TestTarget_Identity(t *testing.T) {
	target := domain.Target{
		FilePath:      "pkg/mod.py",
		QualifiedName: "Outer.method",
		Lines:         domain.LineRange{Start: 4, End: 9},
	}

	assert.Equal(t, "pkg/mod.py::Outer.method:4", target.ID())
	assert.Equal(t, "pkg/mod.py:4 Outer.method", target.String())
}

func TestTarget_IdentityKeepsRepeatedNamesApart(t *testing.T) {
	getter := domain.Target{FilePath: "mod.py", QualifiedName: "C.value", Lines: domain.LineRange{Start: 3, End: 5}}
	setter := domain.Target{FilePath: "mod.py", QualifiedName: "C.value", Lines: domain.LineRange{Start: 7, End: 9}}

	assert.NotEqual(t, getter.ID(), setter.ID())
}

func TestDocAnchor_HasDocstring(t *testing.T) {
	assert.False(t, domain.DocAnchor{DocStart: -1, DocEnd: -1}.HasDocstring())
	assert.True(t, domain.DocAnchor{DocStart: 10, DocEnd: 20}.HasDocstring())
}

func TestRunReport_Counts(t *testing.T) {
	report := &domain.RunReport{
		Results: []domain.GenerationResult{
			{Text: "a", Source: domain.SourceCache},
			{Text: "b", Source: domain.SourceLLM},
			{Text: "c", Source: domain.SourceLLM},
			{Err: errors.New("provider down")},
		},
		Changes: []domain.FileChange{
			{Path: "b.py", Written: true},
			{Path: "a.py", Written: true},
			{Path: "c.py"},
		},
	}
	report.AddFileError("broken.py", errors.Join(domain.ErrParse, errors.New("line 3")))
	report.AddFileError("locked.py", errors.Join(domain.ErrWrite, errors.New("permission denied")))

	assert.Equal(t, 1, report.CacheHits())
	assert.Equal(t, 2, report.Generated())
	assert.Len(t, report.FailedTargets(), 1)
	assert.Equal(t, 1, report.ParseFailures())
	assert.Equal(t, 1, report.WriteFailures())
	assert.Equal(t, []string{"a.py", "b.py"}, report.WrittenFiles())
	assert.True(t, report.HasFailures())
	assert.False(t, (&domain.RunReport{}).HasFailures())
}

func TestRunReport_CacheReadFailuresCount(t *testing.T) {
	report := &domain.RunReport{
		Results: []domain.GenerationResult{
			{Text: "a", Source: domain.SourceLLM, CacheErr: domain.ErrStoreReadFailed},
			{Text: "b", Source: domain.SourceCache},
		},
	}

	assert.Equal(t, 1, report.CacheReadFailures())
	assert.Empty(t, report.FailedTargets())
	assert.True(t, report.HasFailures())
}

func TestFileChange_Changed(t *testing.T) {
	assert.False(t, domain.FileChange{Original: []byte("x"), Updated: []byte("x")}.Changed())
	assert.True(t, domain.FileChange{Original: []byte("x"), Updated: []byte("y")}.Changed())
}
