package config

// File is the on-disk configuration. Pointer fields distinguish an absent key
// from an explicit zero value.
type File struct {
	Provider       *string           `json:"provider"        yaml:"provider"`
	Model          *string           `json:"model"           yaml:"model"`
	MaxConcurrency *int              `json:"max_concurrency" yaml:"max_concurrency"`
	Prompts        map[string]string `json:"prompts"         yaml:"prompts"`
	APIKeyEnv      *string           `json:"api_key_env"     yaml:"api_key_env"`
	BaseURL        *string           `json:"base_url"        yaml:"base_url"`
	Temperature    *float64          `json:"temperature"     yaml:"temperature"`
	TimeoutSeconds *int              `json:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries     *int              `json:"max_retries"     yaml:"max_retries"`
	RetryDelayMS   *int              `json:"retry_delay_ms"  yaml:"retry_delay_ms"`
	CacheBackend   *string           `json:"cache_backend"   yaml:"cache_backend"`
	CacheDir       *string           `json:"cache_dir"       yaml:"cache_dir"`
}

// fieldKeys maps domain.Config field names to their config file keys for error messages.
var fieldKeys = map[string]string{
	"Provider":         "provider",
	"Model":            "model",
	"MaxConcurrency":   "max_concurrency",
	"Prompts":          "prompts",
	"APIKeyEnv":        "api_key_env",
	"BaseURL":          "base_url",
	"Temperature":      "temperature",
	"TimeoutSeconds":   "timeout_seconds",
	"MaxRetries":       "max_retries",
	"RetryDelayMillis": "retry_delay_ms",
	"CacheBackend":     "cache_backend",
	"CacheDir":         "cache_dir",
}
