package logging

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Philanthropists/opresult/pkg/result"
)

func observedContext(t *testing.T) (context.Context, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	ctx := Wrap(logger).GetContext(context.Background())

	return ctx, logs
}

func Test_LogOutcomeFailureIsWarning(t *testing.T) {
	ctx, logs := observedContext(t)

	LogOutcome(ctx, "transfer", result.Fail("invalid amount"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "transfer", fields["operation"])
	assert.Equal(t, map[string]any{
		"success": false,
		"message": "invalid amount",
	}, fields["outcome"])
}

func Test_LogOutcomeSuccessIsDebug(t *testing.T) {
	ctx, logs := observedContext(t)

	LogOutcome(ctx, "transfer", result.Success())

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, map[string]any{"success": true}, entries[0].ContextMap()["outcome"])
}

func Test_FromContextFallsBackToGlobal(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.Same(t, New(), FromContext(context.Background()))
}

func Test_LogOutcomeReportsTheCallerOfLogOutcome(t *testing.T) {
	ctx, logs := observedContext(t)

	LogOutcome(ctx, "transfer", result.NotFound())

	entries := logs.All()
	require.Len(t, entries, 1)
	require.True(t, entries[0].Caller.Defined)
	assert.Equal(t, "outcome_test.go", filepath.Base(entries[0].Caller.File))
}
