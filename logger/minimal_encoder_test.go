package logger

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	return ansiRegex.ReplaceAllString(str, "")
}

func encode(t *testing.T, enc zapcore.Encoder, level zapcore.Level, name, msg string, fields ...zapcore.Field) string {
	t.Helper()
	buf, err := enc.EncodeEntry(zapcore.Entry{
		Level:      level,
		Time:       time.Date(2026, 3, 1, 13, 4, 35, 0, time.UTC),
		LoggerName: name,
		Message:    msg,
	}, fields)
	require.NoError(t, err)
	return stripANSI(buf.String())
}

// The minimal encoder must never silently discard a field.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	testFields := []struct {
		field    zapcore.Field
		mustFind string
	}{
		{zap.String("title", "Backend Engineer"), "title=Backend Engineer"},
		{zap.Int("saved", 12), "saved=12"},
		{zap.Int("invalid", 1), "invalid=1"},
		{zap.Int64("posting_id", 9999999), "posting_id=9999999"},
		{zap.Bool("is_active", false), "is_active=false"},
		{zap.Float64("salary_min", 120000.5), "salary_min=120000.5"},
		{zap.Float32("ratio", 0.5), "ratio=0.5"},
		{zap.String("field.with.dots", "x"), "field.with.dots=x"},
		{zap.Error(errors.New("connection refused")), "error=connection refused"},
		{zap.Error(nil), ""},
		{zap.String(FieldSource, "indeed"), "indeed"},
		{zap.Int(FieldDurationMS, 42), "42ms"},
	}

	var all []zapcore.Field
	for _, tf := range testFields {
		all = append(all, tf.field)
	}

	out := encode(t, newMinimalEncoder(), zapcore.InfoLevel, "scrape.runner", "Source finished", all...)
	for _, tf := range testFields {
		if tf.mustFind != "" {
			assert.Contains(t, out, tf.mustFind, "field was discarded from: %s", out)
		}
	}
}

func TestMinimalEncoderLayout(t *testing.T) {
	out := encode(t, newMinimalEncoder(), zapcore.InfoLevel, "scrape.runner", "Source finished",
		zap.String(FieldRunID, "0b4f5c2e-1111-2222-3333-444455556666"),
		zap.String(FieldSource, "remoteok"),
		zap.Int(FieldSaved, 3),
	)

	assert.True(t, strings.HasPrefix(out, "13:04:35  s.runner  Source finished  "), out)
	assert.Contains(t, out, "remoteok run:0b4f5c2e saved=3")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestMinimalEncoderLevels(t *testing.T) {
	enc := newMinimalEncoder()

	info := encode(t, enc, zapcore.InfoLevel, "", "hello")
	assert.NotContains(t, info, "INFO")

	warn := encode(t, enc, zapcore.WarnLevel, "", "careful")
	assert.Contains(t, warn, "WARN")

	errOut := encode(t, enc, zapcore.ErrorLevel, "", "broken")
	assert.Contains(t, errOut, "ERROR")

	debug := encode(t, enc, zapcore.DebugLevel, "", "detail")
	assert.Contains(t, debug, "DEBUG")
}

func TestMinimalEncoderKeepsContextFields(t *testing.T) {
	enc := newMinimalEncoder()
	clone := enc.Clone()
	clone.AddString(FieldRunID, "abcdef0123")
	clone.AddInt64(FieldPage, 2)

	out := encode(t, clone, zapcore.InfoLevel, "scrape", "Fetching", zap.String(FieldURL, "https://remoteok.com/api"))
	assert.Contains(t, out, "run:abcdef01")
	assert.Contains(t, out, "page=2")
	assert.Contains(t, out, "url=https://remoteok.com/api")

	// The original encoder is unaffected by the clone's context
	plain := encode(t, enc, zapcore.InfoLevel, "scrape", "Fetching")
	assert.NotContains(t, plain, "run:")
}

func TestMinimalEncoderSymbolFirst(t *testing.T) {
	out := encode(t, newMinimalEncoder(), zapcore.InfoLevel, "", "Migrated",
		zap.Int(FieldCount, 2),
		zap.String(FieldSymbol, "⊔"),
	)
	assert.Contains(t, out, "Migrated  ⊔ count=2")
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "s.runner", abbreviateName("scrape.runner"))
	assert.Equal(t, "storage", abbreviateName("storage"))
	assert.Equal(t, "s.remoteok.html", abbreviateName("scrape.remoteok.html"))
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("everforest")

	SetTheme("gruvbox")
	assert.Equal(t, "gruvbox", currentTheme)

	SetTheme("solarized")
	assert.Equal(t, "gruvbox", currentTheme, "unknown themes are ignored")
}
