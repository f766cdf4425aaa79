// Package scheduler runs documentation jobs through the cache and the provider
// with bounded parallelism.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Job is one target with its prompt and cache key already computed.
type Job struct {
	Target domain.Target
	Prompt string
	Key    domain.CacheKey
}

// Options controls a run.
type Options struct {
	Model          string
	Temperature    float64
	MaxConcurrency int
	MaxRetries     int
	RetryDelay     time.Duration
}

// OptionsFromConfig derives run options from the resolved configuration.
func OptionsFromConfig(cfg domain.Config) Options {
	return Options{
		Model:          cfg.Model,
		Temperature:    cfg.Temperature,
		MaxConcurrency: cfg.MaxConcurrency,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay(),
	}
}

// Scheduler executes jobs. A Scheduler may be reused for several runs but runs
// must not overlap.
type Scheduler struct {
	telemetry ports.Telemetry
	now       func() time.Time

	mu     sync.RWMutex
	status map[string]domain.VertexStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(telemetry ports.Telemetry) *Scheduler {
	return &Scheduler{
		telemetry: telemetry,
		now:       time.Now,
		status:    make(map[string]domain.VertexStatus),
	}
}

func (s *Scheduler) updateStatus(id string, status domain.VertexStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[id] = status
}

// run holds the state shared by the jobs of one Run call.
type run struct {
	s        *Scheduler
	provider ports.Provider
	store    ports.CacheStore
	opts     Options
	flight   singleflight.Group
}

// generated is the value shared between callers of one singleflight key.
type generated struct {
	text   string
	cached bool
}

// Run processes jobs with at most opts.MaxConcurrency provider calls in flight and
// returns one result per job, in job order. A failing job never cancels the others.
// Once ctx is canceled no new job is dispatched and the remaining ones fail as canceled.
func (s *Scheduler) Run(
	ctx context.Context,
	provider ports.Provider,
	store ports.CacheStore,
	jobs []Job,
	opts Options,
) []domain.GenerationResult {
	s.mu.Lock()
	s.status = make(map[string]domain.VertexStatus, len(jobs))
	for _, job := range jobs {
		s.status[job.Target.ID()] = domain.VertexStatusPending
	}
	s.mu.Unlock()

	r := &run{s: s, provider: provider, store: store, opts: opts}
	results := make([]domain.GenerationResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(max(opts.MaxConcurrency, 1))

	for i, job := range jobs {
		if ctx.Err() != nil {
			results[i] = r.canceled(job, ctx.Err())
			continue
		}
		g.Go(func() error {
			results[i] = r.execute(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r *run) execute(ctx context.Context, job Job) domain.GenerationResult {
	id := job.Target.ID()
	if err := ctx.Err(); err != nil {
		return r.canceled(job, err)
	}

	ctx, vertex := r.s.telemetry.Record(ctx, job.Target.String())
	r.s.updateStatus(id, domain.VertexStatusRunning)

	res := domain.GenerationResult{Target: job.Target}

	entry, err := r.lookup(job.Key, vertex)
	if err != nil {
		res.CacheErr = err
	}
	if entry != nil {
		res.Text = entry.Text
		res.Source = domain.SourceCache
		vertex.Cached()
		vertex.Complete(nil)
		r.s.updateStatus(id, domain.VertexStatusCached)
		return res
	}

	v, err, _ := r.flight.Do(job.Key.String(), func() (any, error) {
		// An earlier job with the same key may have finished since our lookup.
		if entry, _ := r.lookup(job.Key, vertex); entry != nil {
			return generated{text: entry.Text, cached: true}, nil
		}

		text, err := r.complete(ctx, job, vertex)
		if err != nil {
			return nil, err
		}

		if err := r.store.Put(domain.CacheEntry{
			Key:       job.Key,
			Text:      text,
			Model:     r.opts.Model,
			CreatedAt: r.s.now().UTC(),
		}); err != nil {
			return nil, err
		}
		return generated{text: text}, nil
	})
	if err != nil {
		res.Err = targetError(job, err)
		vertex.Log(domain.LogLevelError, err.Error())
		vertex.Complete(res.Err)
		r.s.updateStatus(id, domain.VertexStatusFailed)
		return res
	}

	out, _ := v.(generated)
	res.Text = out.text
	res.Source = domain.SourceLLM
	status := domain.VertexStatusCompleted
	if out.cached {
		res.Source = domain.SourceCache
		status = domain.VertexStatusCached
		vertex.Cached()
	}
	vertex.Complete(nil)
	r.s.updateStatus(id, status)
	return res
}

// lookup reads the cache. A read failure is logged on the vertex and returned
// alongside a nil entry so the caller can treat it as a miss.
func (r *run) lookup(key domain.CacheKey, vertex ports.Vertex) (*domain.CacheEntry, error) {
	entry, err := r.store.Get(key)
	if err != nil {
		vertex.Log(domain.LogLevelWarn, "cache lookup failed: "+err.Error())
		return nil, err
	}
	return entry, nil
}

// complete calls the provider, retrying retryable errors with exponential backoff.
func (r *run) complete(ctx context.Context, job Job, vertex ports.Vertex) (string, error) {
	req := ports.CompletionRequest{
		Prompt:      job.Prompt,
		Model:       r.opts.Model,
		Temperature: r.opts.Temperature,
	}

	delay := r.opts.RetryDelay
	for attempt := 0; ; attempt++ {
		text, err := r.provider.Complete(ctx, req)
		if err == nil {
			return text, nil
		}

		pe, ok := domain.AsProviderError(err)
		if !ok || !pe.Retryable() || attempt >= r.opts.MaxRetries {
			return "", err
		}

		vertex.Log(domain.LogLevelWarn, "retrying after "+delay.String()+": "+err.Error())
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", domain.NewProviderError(r.provider.Name(), domain.CategoryCanceled, 0, "retry aborted", ctx.Err())
		case <-timer.C:
		}
		delay *= 2
	}
}

func (r *run) canceled(job Job, cause error) domain.GenerationResult {
	r.s.updateStatus(job.Target.ID(), domain.VertexStatusFailed)
	err := domain.NewProviderError(r.provider.Name(), domain.CategoryCanceled, 0, "not dispatched", cause)
	return domain.GenerationResult{
		Target: job.Target,
		Err:    targetError(job, err),
	}
}

func targetError(job Job, err error) error {
	err = zerr.Wrap(err, "failed to generate docstring")
	err = zerr.With(err, "target", job.Target.QualifiedName)
	return zerr.With(err, "file", job.Target.FilePath)
}
