package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(t *testing.T) (*ZapLogger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLogger(zap.New(core)), logs
}

func TestZapLogger_Levels(t *testing.T) {
	log, logs := newObserved(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	tests := []struct {
		level zapcore.Level
		msg   string
		key   string
		val   int64
	}{
		{zapcore.DebugLevel, "dbg", "a", 1},
		{zapcore.InfoLevel, "inf", "b", 2},
		{zapcore.WarnLevel, "wrn", "c", 3},
		{zapcore.ErrorLevel, "err", "d", 4},
	}
	for i, tc := range tests {
		e := entries[i]
		assert.Equal(t, tc.level, e.Level)
		assert.Equal(t, tc.msg, e.Message)
		assert.Equal(t, tc.val, e.ContextMap()[tc.key])
	}
}

func TestZapLogger_WithAddsFields(t *testing.T) {
	log, logs := newObserved(t)

	log.With("req_id", "123").Info(context.Background(), "hello", "k", "v")

	e := logs.All()[0]
	assert.Equal(t, "123", e.ContextMap()["req_id"])
	assert.Equal(t, "v", e.ContextMap()["k"])
}

func TestZapLogger_ContextFields(t *testing.T) {
	log, logs := newObserved(t)

	ctx := ContextWith(context.Background(), "user_id", "u1")
	ctx = ContextWith(ctx, "op", "create")
	log.Info(ctx, "submitted", "id", "s1")

	m := logs.All()[0].ContextMap()
	assert.Equal(t, "u1", m["user_id"])
	assert.Equal(t, "create", m["op"])
	assert.Equal(t, "s1", m["id"])
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, levelFromString("debug"))
	assert.Equal(t, zapcore.WarnLevel, levelFromString("warning"))
	assert.Equal(t, zapcore.ErrorLevel, levelFromString("error"))
	assert.Equal(t, zapcore.InfoLevel, levelFromString("nonsense"))
}

func TestInit(t *testing.T) {
	l, err := Init("debug", true)
	require.NoError(t, err)
	require.NotNil(t, l)

	l, err = Init("info", false)
	require.NoError(t, err)
	var _ Logger = l
}
