package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// LogEntry is a single message captured by Logger.
type LogEntry struct {
	Level   ports.Level
	Message string
	Fields  []ports.Field
}

// Field returns the value of the named field and whether it was present.
func (e LogEntry) Field(key string) (interface{}, bool) {
	for i := len(e.Fields) - 1; i >= 0; i-- {
		if e.Fields[i].Key == key {
			return e.Fields[i].Value, true
		}
	}
	return nil, false
}

type logSink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Logger is a recording test double for ports.Logger. Loggers derived with
// With share the same sink as their parent.
type Logger struct {
	sink   *logSink
	fields []ports.Field
	level  ports.Level
}

// NewLogger creates a Logger that records every level.
func NewLogger() *Logger {
	return &Logger{sink: &logSink{}, level: ports.LevelDebug}
}

func (l *Logger) record(level ports.Level, msg string, fields []ports.Field) {
	if level < l.level {
		return
	}
	all := make([]ports.Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = append(l.sink.entries, LogEntry{Level: level, Message: msg, Fields: all})
}

// Debug records a debug message.
func (l *Logger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelDebug, msg, fields)
}

// Info records an informational message.
func (l *Logger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelInfo, msg, fields)
}

// Warn records a warning.
func (l *Logger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelWarn, msg, fields)
}

// Error records an error message.
func (l *Logger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelError, msg, fields)
}

// With returns a Logger that adds fields to every entry and shares this sink.
func (l *Logger) With(fields ...ports.Field) ports.Logger {
	merged := make([]ports.Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{sink: l.sink, fields: merged, level: l.level}
}

// Level returns the minimum recorded level.
func (l *Logger) Level() ports.Level {
	return l.level
}

// SetLevel sets the minimum recorded level.
func (l *Logger) SetLevel(level ports.Level) {
	l.level = level
}

// Entries returns a copy of everything recorded so far.
func (l *Logger) Entries() []LogEntry {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	out := make([]LogEntry, len(l.sink.entries))
	copy(out, l.sink.entries)
	return out
}

// Messages returns the recorded messages in order.
func (l *Logger) Messages() []string {
	entries := l.Entries()
	msgs := make([]string, len(entries))
	for i, e := range entries {
		msgs[i] = e.Message
	}
	return msgs
}

// MessagesAt returns the recorded messages at exactly the given level.
func (l *Logger) MessagesAt(level ports.Level) []string {
	var msgs []string
	for _, e := range l.Entries() {
		if e.Level == level {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Contains reports whether any recorded message contains substr.
func (l *Logger) Contains(substr string) bool {
	for _, e := range l.Entries() {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// Reset clears the recorded entries.
func (l *Logger) Reset() {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = nil
}

var _ ports.Logger = (*Logger)(nil)
