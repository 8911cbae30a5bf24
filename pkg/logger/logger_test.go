package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext_AddsRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	ctx := ContextWithRequestID(context.Background(), "req-123")
	Info(ctx, "department moved", zap.String("department_id", "abc"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "department moved", entry.Message)
	assert.Equal(t, "req-123", entry.ContextMap()["request_id"])
	assert.Equal(t, "abc", entry.ContextMap()["department_id"])
}

func TestWithContext_NoRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	Warn(context.Background(), "cache invalidation failed")

	require.Equal(t, 1, logs.Len())
	_, ok := logs.All()[0].ContextMap()["request_id"]
	assert.False(t, ok)
}

func TestSetup_UnknownLevel_FallsBackToInfo(t *testing.T) {
	l, err := Setup(Config{Level: "loud", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	defer func() { _ = l.Sync() }()

	assert.False(t, l.Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
}
