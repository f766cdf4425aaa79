package domain

import (
	"path/filepath"
	"time"
)

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Cache backend names.
const (
	CacheBackendSQLite = "sqlite"
	CacheBackendJSON   = "json"
)

const (
	// DefaultConfigFile is looked up in the working directory when no --config is given.
	DefaultConfigFile = "docullim.json"
	// DefaultCacheDir holds the persisted cache, relative to the working directory.
	DefaultCacheDir = ".docullim"
	// DefaultModel is the model used when neither the config nor the CLI names one.
	DefaultModel = "gpt-4"
	// DefaultMaxConcurrency bounds in-flight provider calls when not configured.
	DefaultMaxConcurrency = 2
	// DefaultTemperature matches the sampling temperature of earlier releases.
	DefaultTemperature = 0.5
	// DefaultTimeoutSeconds is passed to provider clients as their request timeout.
	DefaultTimeoutSeconds = 120
	// DefaultMaxRetries is the number of retries for retryable provider errors.
	DefaultMaxRetries = 2
	// DefaultRetryDelayMillis is the base delay of the retry backoff.
	DefaultRetryDelayMillis = 1000
	// DefaultOpenAIBaseURL is the OpenAI API root.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultPrompt is the template for the "default" tag.
	DefaultPrompt = "Generate short and simple documentation explaing the code and include sample usage. " +
		"don't add the word documentation in the begining and also don't explain the example usage."
)

// DefaultAPIKeyEnv returns the environment variable holding the API key for a provider.
func DefaultAPIKeyEnv(provider string) string {
	switch provider {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

// Config is the resolved configuration of a run. It is not modified after loading.
type Config struct {
	Provider         string            `validate:"required,oneof=openai gemini"`
	Model            string            `validate:"required"`
	MaxConcurrency   int               `validate:"gt=0"`
	Prompts          map[string]string `validate:"required,dive,required"`
	APIKeyEnv        string            `validate:"required"`
	BaseURL          string            `validate:"omitempty,url"`
	Temperature      float64           `validate:"gte=0,lte=2"`
	TimeoutSeconds   int               `validate:"gte=0"`
	MaxRetries       int               `validate:"gte=0"`
	RetryDelayMillis int               `validate:"gte=0"`
	CacheBackend     string            `validate:"required,oneof=sqlite json"`
	CacheDir         string            `validate:"required"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Provider:         ProviderOpenAI,
		Model:            DefaultModel,
		MaxConcurrency:   DefaultMaxConcurrency,
		Prompts:          map[string]string{DefaultTag: DefaultPrompt},
		APIKeyEnv:        DefaultAPIKeyEnv(ProviderOpenAI),
		BaseURL:          DefaultOpenAIBaseURL,
		Temperature:      DefaultTemperature,
		TimeoutSeconds:   DefaultTimeoutSeconds,
		MaxRetries:       DefaultMaxRetries,
		RetryDelayMillis: DefaultRetryDelayMillis,
		CacheBackend:     CacheBackendSQLite,
		CacheDir:         DefaultCacheDir,
	}
}

// Timeout returns the provider request timeout. Zero means no timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryDelay returns the base delay between provider retries.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMillis) * time.Millisecond
}

// CachePath returns the location of the cache store for the configured backend.
func (c Config) CachePath() string {
	if c.CacheBackend == CacheBackendJSON {
		return filepath.Join(c.CacheDir, "cache.json")
	}
	return filepath.Join(c.CacheDir, "cache.sqlite")
}

// CacheFiles returns every file either cache backend may create in CacheDir.
func (c Config) CacheFiles() []string {
	names := []string{
		"cache.sqlite",
		"cache.sqlite-journal",
		"cache.sqlite-wal",
		"cache.sqlite-shm",
		"cache.json",
	}
	files := make([]string, 0, len(names))
	for _, name := range names {
		files = append(files, filepath.Join(c.CacheDir, name))
	}
	return files
}

// Overrides are values given on the command line. Zero values leave the config untouched.
type Overrides struct {
	Model          string
	MaxConcurrency int
}
