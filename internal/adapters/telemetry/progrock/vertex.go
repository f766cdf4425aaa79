package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	name   string
	vertex *progrock.VertexRecorder
	logger ports.Logger
}

// Stdout returns a writer attached to the vertex output.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Log writes a leveled line to the vertex output; errors go to its stderr stream.
// Warnings are forwarded to the logger. Errors are not, since the failed result
// is reported at the end of the run.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelError {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", level, msg)

	if level == domain.LogLevelWarn && v.logger != nil {
		v.logger.Warn(v.name + ": " + msg)
	}
}

// Complete marks the vertex as finished, failed when err is non-nil.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
