package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across RecruitIQ.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldPostingID = "posting_id"
	FieldComponent = "component"

	// Scraping
	FieldSource   = "source"
	FieldPlatform = "platform"
	FieldURL      = "url"
	FieldQuery    = "query"
	FieldLocation = "location"
	FieldCompany  = "company"
	FieldPage     = "page"

	// Pipeline outcomes
	FieldSaved   = "saved"
	FieldInvalid = "invalid"
	FieldFailed  = "failed"
	FieldField   = "field"
	FieldReason  = "reason"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"
	FieldLimit = "limit"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"

	// Glyph for the operation that emitted the entry
	FieldSymbol = "symbol"
)

// Context keys for propagating logging context
type contextKey string

const (
	runIDKey     contextKey = "logger_run_id"
	sourceKey    contextKey = "logger_source"
	componentKey contextKey = "logger_component"
)

// WithRunID adds a scrape or import run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithSource adds the source (scraper or file) name to the context
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// RunIDFromContext returns the run ID carried by ctx, or "".
func RunIDFromContext(ctx context.Context) string {
	runID, _ := ctx.Value(runIDKey).(string)
	return runID
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if source, ok := ctx.Value(sourceKey).(string); ok && source != "" {
		fields = append(fields, FieldSource, source)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns the global logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	return WithContext(Logger, ctx)
}

// WithContext decorates base with the fields carried by ctx.
// Use this with injected loggers so run_id and source follow the operation.
func WithContext(base *zap.SugaredLogger, ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	func NewRunner() *Runner {
//	    return &Runner{
//	        logger: logger.ComponentLogger("scrape.runner"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
