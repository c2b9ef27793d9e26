package logger

import (
	"github.com/teranos/recruitiq/sym"
	"go.uber.org/zap"
)

// Symbol-aware logging helpers.
// These log with the glyph as a structured field, not in the message,
// which keeps messages clean and makes logs filterable by operation.

// DBInfow logs an info message with the DB symbol (⊔)
func DBInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, append([]interface{}{FieldSymbol, sym.DB}, keysAndValues...)...)
	}
}

// DBDebugw logs a debug message with the DB symbol (⊔)
func DBDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Debugw(msg, append([]interface{}{FieldSymbol, sym.DB}, keysAndValues...)...)
	}
}

// WithSymbol returns the global logger with the given symbol as a field.
func WithSymbol(symbol string) *zap.SugaredLogger {
	return Logger.With(FieldSymbol, symbol)
}

// AddScrapeSymbol wraps a logger with the Scrape symbol (⨳)
func AddScrapeSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.Scrape)
}

// AddDBSymbol wraps a logger with the DB symbol (⊔)
func AddDBSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.DB)
}

// AddImportSymbol wraps a logger with the Import symbol (⇥)
func AddImportSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.Import)
}
