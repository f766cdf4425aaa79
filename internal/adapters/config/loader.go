// Package config provides the configuration loader for docullim.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// candidateFiles are looked up in order in the working directory when no path is given.
var candidateFiles = []string{domain.DefaultConfigFile, "docullim.yaml", "docullim.yml"}

// Loader implements ports.ConfigLoader for JSON and YAML files.
type Loader struct {
	Logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load resolves defaults, the config file and CLI overrides into a validated config.
func (l *Loader) Load(cwd, path string, overrides domain.Overrides) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	configPath, err := findConfiguration(cwd, path)
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		file, err := readFile(configPath)
		if err != nil {
			return nil, err
		}
		l.apply(&cfg, file, configPath)
	}

	if overrides.Model != "" {
		cfg.Model = overrides.Model
	}
	if overrides.MaxConcurrency != 0 {
		cfg.MaxConcurrency = overrides.MaxConcurrency
	}

	if !filepath.IsAbs(cfg.CacheDir) {
		cfg.CacheDir = filepath.Join(cwd, cfg.CacheDir)
	}

	if err := l.validate.Struct(cfg); err != nil {
		return nil, errors.Join(domain.ErrConfig, zerr.With(describeValidation(err), "path", configPath))
	}

	if !isBelow(cfg.CacheDir, cwd) {
		return nil, errors.Join(domain.ErrConfig, zerr.With(zerr.Wrap(domain.ErrUnsafeCacheDir, ""), "cache_dir", cfg.CacheDir))
	}

	return &cfg, nil
}

// isBelow reports whether dir is neither cwd nor one of its parents, so that
// removing dir can never remove the project.
func isBelow(dir, cwd string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(cwd))
	if err != nil {
		return true
	}
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// findConfiguration returns the config file to read, or "" when none applies.
// An explicit path must exist; the default candidates are optional.
func findConfiguration(cwd, path string) (string, error) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", errors.Join(domain.ErrConfig, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, ""), "path", path))
			}
			return "", errors.Join(domain.ErrConfig, domain.ErrConfigReadFailed, zerr.With(err, "path", path))
		}
		return path, nil
	}

	for _, name := range candidateFiles {
		candidate := filepath.Join(cwd, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func readFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, errors.Join(domain.ErrConfig, domain.ErrConfigReadFailed, zerr.With(err, "path", path))
	}

	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &file)
	default:
		err = decodeJSON(data, &file)
	}
	if err != nil {
		return nil, errors.Join(domain.ErrConfig, domain.ErrConfigParseFailed, zerr.With(err, "path", path))
	}
	return &file, nil
}

func decodeJSON(data []byte, file *File) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(file); err != nil {
		return err
	}
	if dec.More() {
		return zerr.New("unexpected data after the config object")
	}
	return nil
}

func decodeYAML(data []byte, file *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(file); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// apply overlays the file onto cfg. Provider-dependent defaults follow the provider
// chosen by the file unless the file sets them explicitly.
func (l *Loader) apply(cfg *domain.Config, file *File, path string) {
	if file.Provider != nil {
		cfg.Provider = strings.ToLower(*file.Provider)
		cfg.APIKeyEnv = domain.DefaultAPIKeyEnv(cfg.Provider)
		if cfg.Provider != domain.ProviderOpenAI {
			cfg.BaseURL = ""
		}
	}
	setIf(&cfg.Model, file.Model)
	setIf(&cfg.MaxConcurrency, file.MaxConcurrency)
	setIf(&cfg.APIKeyEnv, file.APIKeyEnv)
	setIf(&cfg.BaseURL, file.BaseURL)
	setIf(&cfg.Temperature, file.Temperature)
	setIf(&cfg.TimeoutSeconds, file.TimeoutSeconds)
	setIf(&cfg.MaxRetries, file.MaxRetries)
	setIf(&cfg.RetryDelayMillis, file.RetryDelayMS)
	setIf(&cfg.CacheBackend, file.CacheBackend)
	setIf(&cfg.CacheDir, file.CacheDir)

	if file.Prompts != nil {
		// A user prompt set replaces the built-in one.
		cfg.Prompts = file.Prompts
		if _, ok := file.Prompts[domain.DefaultTag]; !ok && l.Logger != nil {
			l.Logger.Warn(fmt.Sprintf("%s defines no %q prompt; untagged targets will fail", path, domain.DefaultTag))
		}
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// describeValidation turns validator errors into a message naming config keys.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key, ok := fieldKeys[fe.StructField()]
		if !ok {
			key = fe.Namespace()
		}
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", key, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s (got %v)", key, fe.Tag(), fe.Value()))
		}
	}
	return zerr.New(strings.Join(msgs, "\n"))
}
