package domain

// VertexStatus is the lifecycle state of one target in the progress display.
type VertexStatus string

const (
	// VertexStatusPending means the target is queued behind the concurrency limit.
	VertexStatusPending VertexStatus = "pending"
	// VertexStatusRunning means a provider call is in flight.
	VertexStatusRunning VertexStatus = "running"
	// VertexStatusCompleted means text was generated and stored.
	VertexStatusCompleted VertexStatus = "completed"
	// VertexStatusFailed means generation failed for the target.
	VertexStatusFailed VertexStatus = "failed"
	// VertexStatusCached means the text came from the cache store.
	VertexStatusCached VertexStatus = "cached"
)

// LogLevel is the severity of a message attached to a vertex, mirroring the slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
