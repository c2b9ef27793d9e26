package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
//	0 (default) - results, errors with hints, final status
//	1 (-v)      - + scrape progress, per-source summaries
//	2 (-vv)     - + HTTP requests, timing, config loaded
//	3 (-vvv)    - + SQL statements, per-record pipeline decisions

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	OutputResults OutputCategory = iota // command output
	OutputErrors                        // errors with hints
	OutputProgress                      // spinners and per-source counts
	OutputSummary                       // batch totals after each source
	OutputHTTPCalls                     // scraper requests
	OutputTiming                        // operation durations
	OutputConfig                        // config values loaded
	OutputSQLQueries                    // individual SQL statements
	OutputRecords                       // per-record validate/upsert decisions
)

var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputProgress:   VerbosityInfo,
	OutputSummary:    VerbosityInfo,
	OutputHTTPCalls:  VerbosityDebug,
	OutputTiming:     VerbosityDebug,
	OutputConfig:     VerbosityDebug,
	OutputSQLQueries: VerbosityTrace,
	OutputRecords:    VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:    "results",
	OutputErrors:     "errors",
	OutputProgress:   "progress",
	OutputSummary:    "summary",
	OutputHTTPCalls:  "http",
	OutputTiming:     "timing",
	OutputConfig:     "config",
	OutputSQLQueries: "sql",
	OutputRecords:    "records",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
