package am

// Config represents the RecruitIQ configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database" yaml:"database" json:"database"`
	Scrape   ScrapeConfig   `mapstructure:"scrape" toml:"scrape" yaml:"scrape" json:"scrape"`
	Search   SearchConfig   `mapstructure:"search" toml:"search" yaml:"search" json:"search"`
	Analysis AnalysisConfig `mapstructure:"analysis" toml:"analysis" yaml:"analysis" json:"analysis"`
	Report   ReportConfig   `mapstructure:"report" toml:"report" yaml:"report" json:"report"`
	Log      LogConfig      `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`
}

// ScrapeConfig configures the job board scrapers
type ScrapeConfig struct {
	// Politeness delay between requests to one site
	DelayMS        int    `mapstructure:"delay_ms" toml:"delay_ms" yaml:"delay_ms" json:"delay_ms"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
	DefaultLimit   int    `mapstructure:"default_limit" toml:"default_limit" yaml:"default_limit" json:"default_limit"`
	UserAgent      string `mapstructure:"user_agent" toml:"user_agent" yaml:"user_agent" json:"user_agent"`
	Query          string `mapstructure:"query" toml:"query" yaml:"query" json:"query"`
	Location       string `mapstructure:"location" toml:"location" yaml:"location" json:"location"`
	// Greenhouse board tokens for `scrape companies`
	Companies []string `mapstructure:"companies" toml:"companies" yaml:"companies" json:"companies"`

	// Base URLs, overridable for testing against local fixtures
	RemoteOKURL   string `mapstructure:"remoteok_url" toml:"remoteok_url" yaml:"remoteok_url" json:"remoteok_url"`
	IndeedURL     string `mapstructure:"indeed_url" toml:"indeed_url" yaml:"indeed_url" json:"indeed_url"`
	LinkedInURL   string `mapstructure:"linkedin_url" toml:"linkedin_url" yaml:"linkedin_url" json:"linkedin_url"`
	GreenhouseURL string `mapstructure:"greenhouse_url" toml:"greenhouse_url" yaml:"greenhouse_url" json:"greenhouse_url"`
}

// SearchConfig configures the search command
type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit" toml:"default_limit" yaml:"default_limit" json:"default_limit"`
}

// AnalysisConfig configures market analysis
type AnalysisConfig struct {
	TopN int `mapstructure:"top_n" toml:"top_n" yaml:"top_n" json:"top_n"`
	// Skill vocabulary; empty uses the built-in list
	Skills []string `mapstructure:"skills" toml:"skills" yaml:"skills" json:"skills"`
}

// ReportConfig configures HTML report generation
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir" toml:"output_dir" yaml:"output_dir" json:"output_dir"`
}

// LogConfig configures console logging
type LogConfig struct {
	Theme string `mapstructure:"theme" toml:"theme" yaml:"theme" json:"theme"` // everforest, gruvbox
}

// File and directory permission constants
const (
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
)
