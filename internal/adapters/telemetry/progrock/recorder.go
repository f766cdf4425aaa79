// Package progrock records per-target progress on a progrock tape.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/docullim/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry on a progrock recorder. Warnings logged
// on a vertex are also forwarded to the logger so they reach the terminal.
type Recorder struct {
	w      progrock.Writer
	rec    *progrock.Recorder
	logger ports.Logger
}

// New creates a new Recorder with an in-memory tape.
func New(logger ports.Logger) *Recorder {
	return NewRecorder(progrock.NewTape(), logger)
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer, logger ports.Logger) *Recorder {
	return &Recorder{
		w:      w,
		rec:    progrock.NewRecorder(w),
		logger: logger,
	}
}

// Record starts a vertex named after the target.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := &Vertex{
		name:   name,
		vertex: r.rec.Vertex(digest.FromString(name), name),
		logger: r.logger,
	}
	return ports.ContextWithVertex(ctx, v), v
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
