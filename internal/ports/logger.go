// Package ports defines the interfaces makeflow uses to reach the outside world:
// logging, process execution and the file system.
package ports

import "context"

// Level orders log messages by severity. Loggers drop messages below their
// own level.
type Level int

const (
	// LevelDebug covers per-step detail such as skipped files and commands.
	LevelDebug Level = iota
	// LevelInfo covers "building <target>" and other progress messages.
	LevelInfo
	// LevelWarn covers redefined targets and missing dependencies.
	LevelWarn
	// LevelError covers failed actions.
	LevelError
)

// String returns the upper-case label used in console output.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Field is one key/value pair attached to a message, such as target=build.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for Field{Key: key, Value: value}.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Err creates an "error" field. A nil error produces a nil value.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Logger receives build progress. The engine hands one Logger to each
// evaluation, tagged with the run ID, and derives a per-target logger from it
// with With.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)

	// With returns a Logger that adds fields to every message.
	With(fields ...Field) Logger

	Level() Level
	SetLevel(level Level)
}

type loggerKey struct{}

// ContextWithLogger attaches logger to ctx. Run contexts do this for every
// action so adapters below the action log against the same target.
func ContextWithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the logger attached to ctx, or nil.
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return logger
	}
	return nil
}
