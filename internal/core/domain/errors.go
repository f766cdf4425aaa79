package domain

import "go.trai.ch/zerr"

var (
	// ErrParse is returned when a source file cannot be parsed. It is reported per file and
	// does not stop the run.
	ErrParse = zerr.New("failed to parse source file")

	// ErrFileRead is returned when a source file cannot be read.
	ErrFileRead = zerr.New("failed to read source file")

	// ErrConfig is returned when the configuration is unusable. It is fatal for the run.
	ErrConfig = zerr.New("invalid configuration")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsafeCacheDir is returned when cache_dir would make clean remove the project.
	ErrUnsafeCacheDir = zerr.New("cache_dir must not be the working directory or one of its parents")

	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrMissingPrompt is returned when neither the target's tag nor "default" has a template.
	ErrMissingPrompt = zerr.New("missing prompt template")

	// ErrWrite is returned when a file cannot be rewritten. It is reported per file.
	ErrWrite = zerr.New("failed to write documentation")

	// ErrStaleSource is returned when a file changed on disk between scanning and writing.
	ErrStaleSource = zerr.New("source file changed since it was scanned")

	// ErrNoFilesFound is returned when the given patterns match no files.
	ErrNoFilesFound = zerr.New("no files found for the given patterns")

	// ErrNoPatterns is returned when the CLI is invoked without any file or pattern.
	ErrNoPatterns = zerr.New("no files or patterns specified")

	// ErrStoreOpenFailed is returned when the cache store cannot be opened.
	ErrStoreOpenFailed = zerr.New("failed to open cache store")

	// ErrStoreReadFailed is returned when a cache entry cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cache entry")

	// ErrStoreWriteFailed is returned when a cache entry cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write cache entry")

	// ErrStoreResetFailed is returned when the cache cannot be reset.
	ErrStoreResetFailed = zerr.New("failed to reset cache")

	// ErrUnknownCacheBackend is returned when the configured cache backend is not supported.
	ErrUnknownCacheBackend = zerr.New("unknown cache backend")

	// ErrUnknownProvider is returned when the configured provider is not supported.
	ErrUnknownProvider = zerr.New("unknown provider")

	// ErrMissingAPIKey is returned when the provider API key environment variable is empty.
	ErrMissingAPIKey = zerr.New("provider API key is not set")

	// ErrGenerationFailed is returned when one or more targets could not be documented.
	ErrGenerationFailed = zerr.New("documentation generation failed")

	// ErrMarkerExists is returned when init would overwrite an existing marker module.
	ErrMarkerExists = zerr.New("marker module already exists")
)
