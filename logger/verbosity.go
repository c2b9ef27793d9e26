package logger

import "go.uber.org/zap/zapcore"

// -v flag counts. Each step unlocks more output categories (see output.go).
const (
	VerbosityUser  = 0 // results and errors
	VerbosityInfo  = 1 // scrape progress, per-source summaries
	VerbosityDebug = 2 // HTTP requests, timing, resolved config
	VerbosityTrace = 3 // SQL, per-record save/skip decisions
)

var levelNames = [...]string{"user", "info (-v)", "debug (-vv)", "trace (-vvv)"}

// VerbosityToLevel maps the -v count to the minimum zap level that is logged.
// Trace has no zap level of its own; it only widens ShouldOutput.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

// LevelName names a verbosity for log fields; counts above trace read as trace
func LevelName(verbosity int) string {
	if verbosity < VerbosityUser {
		verbosity = VerbosityUser
	}
	if verbosity > VerbosityTrace {
		verbosity = VerbosityTrace
	}
	return levelNames[verbosity]
}
