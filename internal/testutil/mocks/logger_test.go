package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/makeflow/internal/ports"
)

func TestLogger_RecordsEntries(t *testing.T) {
	ctx := context.Background()
	log := NewLogger()

	log.Info(ctx, "building all", ports.F("target", "all"))
	log.Warn(ctx, "careful")

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, ports.LevelInfo, entries[0].Level)

	v, ok := entries[0].Field("target")
	assert.True(t, ok)
	assert.Equal(t, "all", v)

	assert.Equal(t, []string{"building all", "careful"}, log.Messages())
	assert.Equal(t, []string{"careful"}, log.MessagesAt(ports.LevelWarn))
	assert.True(t, log.Contains("building"))
}

func TestLogger_WithSharesSink(t *testing.T) {
	ctx := context.Background()
	log := NewLogger()

	child := log.With(ports.F("run_id", "abc"))
	child.Info(ctx, "from child")

	entries := log.Entries()
	require.Len(t, entries, 1)
	v, ok := entries[0].Field("run_id")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestLogger_LevelFilter(t *testing.T) {
	ctx := context.Background()
	log := NewLogger()
	log.SetLevel(ports.LevelWarn)

	log.Debug(ctx, "hidden")
	log.Info(ctx, "hidden")
	log.Error(ctx, "shown")

	assert.Equal(t, []string{"shown"}, log.Messages())
	assert.Equal(t, ports.LevelWarn, log.Level())

	log.Reset()
	assert.Empty(t, log.Entries())
}
