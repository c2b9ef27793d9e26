package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// swapLogger replaces the global logger for the duration of a test.
func swapLogger(t *testing.T, l *zap.SugaredLogger) {
	t.Helper()
	prev := Logger
	Logger = l
	t.Cleanup(func() { Logger = prev })
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
		enabled    zapcore.Level
		disabled   zapcore.Level
	}{
		{"JSON output, default verbosity", true, 0, zapcore.WarnLevel, zapcore.InfoLevel},
		{"Console output, -v", false, 1, zapcore.InfoLevel, zapcore.DebugLevel},
		{"Console output, -vv", false, 2, zapcore.DebugLevel, zapcore.DebugLevel - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			swapLogger(t, nil)
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			core := Logger.Desugar().Core()
			assert.True(t, core.Enabled(tt.enabled))
			assert.False(t, core.Enabled(tt.disabled))
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
	assert.Equal(t, "trace (-vvv)", LevelName(5))
	assert.Equal(t, "user", LevelName(-2))
	assert.Equal(t, "info (-v)", LevelName(VerbosityInfo))
}

func TestShouldOutput(t *testing.T) {
	assert.True(t, ShouldOutput(0, OutputResults))
	assert.False(t, ShouldOutput(0, OutputProgress))
	assert.True(t, ShouldOutput(1, OutputSummary))
	assert.False(t, ShouldOutput(2, OutputSQLQueries))
	assert.True(t, ShouldOutput(3, OutputRecords))
	assert.Equal(t, "http", CategoryName(OutputHTTPCalls))
	assert.Equal(t, "unknown", CategoryName(OutputCategory(99)))
}

func TestFieldsFromContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, FieldsFromContext(ctx))

	ctx = WithRunID(ctx, "run-1")
	ctx = WithSource(ctx, "indeed")
	ctx = WithComponent(ctx, "scrape")

	fields := FieldsFromContext(ctx)
	assert.Equal(t, []interface{}{FieldRunID, "run-1", FieldSource, "indeed", FieldComponent, "scrape"}, fields)
	assert.Equal(t, "run-1", RunIDFromContext(ctx))
}

func TestLoggerFromContextAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	swapLogger(t, zap.New(core).Sugar())

	ctx := WithRunID(context.Background(), "run-42")
	LoggerFromContext(ctx).Infow("Source finished", FieldSaved, 3)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Source finished", entry.Message)
	assert.Equal(t, "run-42", entry.ContextMap()[FieldRunID])
	assert.EqualValues(t, 3, entry.ContextMap()[FieldSaved])
}

func TestComponentLoggerAndSymbols(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	swapLogger(t, zap.New(core).Sugar())

	AddScrapeSymbol(ComponentLogger("scrape.runner")).Infow("Run started")
	DBDebugw("Migration applied", FieldCount, 1)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "scrape.runner", logs.All()[0].LoggerName)
	assert.Equal(t, "⨳", logs.All()[0].ContextMap()[FieldSymbol])
	assert.Equal(t, "⊔", logs.All()[1].ContextMap()[FieldSymbol])
}

func TestLoggingFunctionsWithNilLogger(t *testing.T) {
	swapLogger(t, nil)

	assert.NotPanics(t, func() {
		Info("test")
		Infof("test %s", "format")
		Infow("test", "key", "value")
		Errorw("test", "key", "value")
		Warnw("test", "key", "value")
		Debugw("test", "key", "value")
		DBInfow("test")
		Cleanup()
	})
}
