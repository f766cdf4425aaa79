// Package app implements the application layer for docullim.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/docullim/internal/engine/prompt"
	"go.trai.ch/docullim/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     ports.FileResolver
	scanner      ports.Scanner
	hasher       ports.Hasher
	stores       ports.CacheStoreFactory
	providers    ports.ProviderFactory
	writer       ports.Writer
	installer    ports.MarkerInstaller
	scheduler    *scheduler.Scheduler
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.FileResolver,
	scanner ports.Scanner,
	hasher ports.Hasher,
	stores ports.CacheStoreFactory,
	providers ports.ProviderFactory,
	writer ports.Writer,
	installer ports.MarkerInstaller,
	sched *scheduler.Scheduler,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		scanner:      scanner,
		hasher:       hasher,
		stores:       stores,
		providers:    providers,
		writer:       writer,
		installer:    installer,
		scheduler:    sched,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Patterns   []string
	ConfigPath string
	Overrides  domain.Overrides
	ResetCache bool
	Mode       domain.WriteMode
}

// Run documents every marked definition in the files matched by opts.Patterns.
// The returned error is fatal for the run; per-file and per-target failures are
// collected in the report instead.
func (a *App) Run(ctx context.Context, opts RunOptions) (*domain.RunReport, error) {
	if len(opts.Patterns) == 0 {
		return nil, domain.ErrNoPatterns
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine working directory")
	}

	// 1. Load the configuration
	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath, opts.Overrides)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	// 2. Resolve input files
	files, unmatched, err := a.resolver.ResolveFiles(opts.Patterns, cwd)
	if err != nil {
		return nil, err
	}
	for _, pattern := range unmatched {
		a.logger.Warn(fmt.Sprintf("no files match %q, skipping", pattern))
	}
	if len(files) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoFilesFound, ""), "patterns", strings.Join(opts.Patterns, " "))
	}

	report := &domain.RunReport{Files: files}

	// 3. Scan for marked definitions
	targets := a.scan(ctx, files, report)

	// 4. Build prompts before anything is dispatched so a missing template aborts early
	jobs, err := a.plan(targets, cfg)
	if err != nil {
		return nil, err
	}

	if len(jobs) == 0 && !opts.ResetCache {
		a.logger.Info("no marked definitions found")
		return report, nil
	}

	// 5. Open the cache
	store, err := a.stores.Open(*cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			a.logger.Warn("failed to close cache store: " + cerr.Error())
		}
	}()

	if opts.ResetCache {
		if err := store.Reset(); err != nil {
			return nil, err
		}
		a.logger.Info("cache reset")
	}
	if len(jobs) == 0 {
		a.logger.Info("no marked definitions found")
		return report, nil
	}

	// 6. Generate
	provider, err := a.providers.New(ctx, *cfg)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create provider")
	}
	if closer, ok := provider.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	report.Results = a.scheduler.Run(ctx, provider, store, jobs, scheduler.OptionsFromConfig(*cfg))
	for _, res := range report.Results {
		if !res.OK() {
			a.logger.Error(res.Err)
		}
	}

	// 7. Write or preview
	a.apply(ctx, report, opts.Mode)

	a.logger.Info(summary(report, opts.Mode))
	return report, nil
}

func (a *App) scan(ctx context.Context, files []string, report *domain.RunReport) []domain.Target {
	var targets []domain.Target
	for _, file := range files {
		found, err := a.scanner.Scan(ctx, file)
		if err != nil {
			report.AddFileError(file, err)
			a.logger.Error(err)
			continue
		}
		targets = append(targets, found...)
	}
	return targets
}

func (a *App) plan(targets []domain.Target, cfg *domain.Config) ([]scheduler.Job, error) {
	jobs := make([]scheduler.Job, 0, len(targets))
	for _, target := range targets {
		text, err := prompt.Build(target, *cfg)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, scheduler.Job{
			Target: target,
			Prompt: text,
			Key:    a.hasher.CacheKey(target, cfg.Model, text),
		})
	}
	return jobs, nil
}

// apply hands each file's results to the writer. Files are independent; a
// failing file does not prevent the others from being written.
func (a *App) apply(ctx context.Context, report *domain.RunReport, mode domain.WriteMode) {
	byFile := make(map[string][]domain.GenerationResult)
	var order []string
	for _, res := range report.Results {
		if !res.OK() {
			continue
		}
		path := res.Target.FilePath
		if _, ok := byFile[path]; !ok {
			order = append(order, path)
		}
		byFile[path] = append(byFile[path], res)
	}

	for _, path := range order {
		change, err := a.writer.Apply(ctx, path, byFile[path], mode)
		if err != nil {
			report.AddFileError(path, err)
			a.logger.Error(err)
			continue
		}
		report.Changes = append(report.Changes, change)
	}
}

func summary(report *domain.RunReport, mode domain.WriteMode) string {
	msg := fmt.Sprintf("%d documented (%d cached, %d generated)",
		report.CacheHits()+report.Generated(), report.CacheHits(), report.Generated())
	if n := len(report.FailedTargets()); n > 0 {
		msg += fmt.Sprintf(", %d failed", n)
	}
	if n := report.ParseFailures(); n > 0 {
		msg += fmt.Sprintf(", %d unparsable files", n)
	}
	if n := report.WriteFailures(); n > 0 {
		msg += fmt.Sprintf(", %d files not written", n)
	}
	if n := report.CacheReadFailures(); n > 0 {
		msg += fmt.Sprintf(", %d cache read errors", n)
	}
	if mode == domain.ModeWrite {
		msg += fmt.Sprintf(", %d files updated", len(report.WrittenFiles()))
	}
	return msg
}

// InitOptions configuration for the Init method.
type InitOptions struct {
	Dir   string
	Force bool
}

// Init installs the Python marker module into opts.Dir.
func (a *App) Init(_ context.Context, opts InitOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	path, err := a.installer.Install(dir, opts.Force)
	if err != nil {
		return err
	}
	a.logger.Info("created " + path)
	return nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
}

// Clean removes the files of both cache backends from the configured cache
// directory, and the directory itself once it is empty. Anything else in the
// directory is left alone.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to determine working directory")
	}

	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath, domain.Overrides{})
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	removed := 0
	for _, path := range cfg.CacheFiles() {
		err := os.Remove(path)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, os.ErrNotExist):
		default:
			return zerr.With(zerr.Wrap(err, "failed to remove cache file"), "path", path)
		}
	}

	entries, err := os.ReadDir(cfg.CacheDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return zerr.With(zerr.Wrap(err, "failed to read cache directory"), "path", cfg.CacheDir)
	case len(entries) == 0:
		if err := os.Remove(cfg.CacheDir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove cache directory"), "path", cfg.CacheDir)
		}
		removed++
	default:
		a.logger.Warn(fmt.Sprintf("%s still holds other files, leaving it in place", cfg.CacheDir))
	}

	if removed == 0 {
		a.logger.Info("nothing to clean")
		return nil
	}
	a.logger.Info("removed cache in " + cfg.CacheDir)
	return nil
}
