package ports

import (
	"context"
	"io"

	"go.trai.ch/docullim/internal/core/domain"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records progress of a run as a set of vertices, one per target.
type Telemetry interface {
	// Record starts a vertex and returns a context carrying it.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is a unit of recorded work.
type Vertex interface {
	// Stdout returns a writer for output attached to the vertex.
	Stdout() io.Writer
	// Log records a message associated with this vertex.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex as finished, failed when err is non-nil.
	Complete(err error)
	// Cached marks the vertex as a cache hit.
	Cached()
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex stored in ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
