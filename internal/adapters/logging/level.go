package logging

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// ParseLevel converts a user supplied level name into a ports.Level.
func ParseLevel(raw string) (ports.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug", "trace":
		return ports.LevelDebug, nil
	case "", "info":
		return ports.LevelInfo, nil
	case "warn", "warning":
		return ports.LevelWarn, nil
	case "error":
		return ports.LevelError, nil
	default:
		return ports.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", raw)
	}
}
