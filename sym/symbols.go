// Package sym defines canonical glyphs for RecruitIQ operations and system markers.
// These glyphs are stable across CLI output and log fields.
package sym

// Command glyphs, one per top-level operation.
const (
	AM      = "≡" // am: configuration and system settings
	Scrape  = "⨳" // scrape: collect postings from job boards
	Import  = "⇥" // import: load postings from files
	Search  = "⋈" // search: filter and list stored postings
	Analyze = "∑" // analyze: market statistics
	Report  = "▣" // report: generated HTML documents
	Status  = "⍟" // status: database overview
	Prune   = "⌫" // prune: soft-delete stale postings
)

// System infrastructure glyphs.
const (
	DB      = "⊔" // database/storage layer
	Limiter = "꩜" // politeness delay between requests
	Salary  = "¤" // salary figures
	Skill   = "✦" // skill keywords
)

// entry binds a glyph to its command and description.
type entry struct {
	glyph       string
	command     string
	label       string
	description string
	palette     int // 1-based position in PaletteOrder, 0 = not in palette
}

var registry = []entry{
	{Scrape, "scrape", "Scrape", "Collect postings from job boards", 1},
	{Import, "import", "Import", "Load postings from JSON or YAML files", 2},
	{Search, "search", "Search", "Filter and list stored postings", 3},
	{Analyze, "analyze", "Analyze", "Market statistics and skill demand", 4},
	{Report, "report", "Report", "Generate HTML reports", 5},
	{Status, "status", "Status", "Database overview", 6},
	{Prune, "prune", "Prune", "Deactivate stale postings", 7},
	{AM, "am", "Configuration", "System settings and state", 8},
	{DB, "", "", "Database/storage layer", 0},
	{Limiter, "", "", "Politeness delay between requests", 0},
	{Salary, "", "", "Salary figures", 0},
	{Skill, "", "", "Skill keywords", 0},
}

// PaletteOrder defines the canonical ordering for help output and report navigation.
var PaletteOrder []string

// SymbolToCommand maps glyph strings to their command names.
var SymbolToCommand = map[string]string{}

// CommandToSymbol maps command names to their canonical glyph strings.
var CommandToSymbol = map[string]string{}

// CommandDescriptions provides human-readable explanations for each command.
var CommandDescriptions = map[string]string{}

func init() {
	ordered := make([]entry, 0, len(registry))
	for _, e := range registry {
		if e.command == "" {
			continue
		}
		SymbolToCommand[e.glyph] = e.command
		CommandToSymbol[e.command] = e.glyph
		CommandDescriptions[e.command] = e.label + " — " + e.description
		if e.palette > 0 {
			ordered = append(ordered, e)
		}
	}
	PaletteOrder = make([]string, len(ordered))
	for _, e := range ordered {
		PaletteOrder[e.palette-1] = e.glyph
	}
}

// ForCommand returns the glyph for a command name, or "" when unknown.
func ForCommand(command string) string {
	return CommandToSymbol[command]
}
