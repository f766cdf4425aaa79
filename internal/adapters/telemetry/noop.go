// Package telemetry holds progress recording adapters.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
)

var _ ports.Telemetry = (*NoOp)(nil)

// NoOp is a ports.Telemetry that records nothing.
type NoOp struct{}

// NewNoOp creates a new NoOp.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns ctx carrying a vertex that discards everything.
func (t *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := NoOpVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (t *NoOp) Close() error {
	return nil
}

// NoOpVertex is a ports.Vertex that discards everything.
type NoOpVertex struct{}

// Stdout returns io.Discard.
func (NoOpVertex) Stdout() io.Writer { return io.Discard }

// Log does nothing.
func (NoOpVertex) Log(domain.LogLevel, string) {}

// Complete does nothing.
func (NoOpVertex) Complete(error) {}

// Cached does nothing.
func (NoOpVertex) Cached() {}
