package am

import (
	"fmt"

	"github.com/spf13/viper"
)

// Default values shared by SetDefaults and the zero-value getters
const (
	DefaultDatabasePath   = "recruitiq.db"
	DefaultDelayMS        = 2000
	DefaultTimeoutSeconds = 30
	DefaultScrapeLimit    = 50
	DefaultSearchLimit    = 50
	DefaultTopN           = 10
	DefaultReportDir      = "reports"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	DefaultQuery          = "software engineer"
	DefaultLocation       = "United States"
	DefaultLogTheme       = "everforest"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("scrape.delay_ms", DefaultDelayMS) // polite delay between requests to one site
	v.SetDefault("scrape.timeout_seconds", DefaultTimeoutSeconds)
	v.SetDefault("scrape.default_limit", DefaultScrapeLimit)
	v.SetDefault("scrape.user_agent", DefaultUserAgent)
	v.SetDefault("scrape.query", DefaultQuery)
	v.SetDefault("scrape.location", DefaultLocation)
	v.SetDefault("scrape.companies", []string{"stripe", "airbnb", "gitlab"})
	v.SetDefault("scrape.remoteok_url", "https://remoteok.com")
	v.SetDefault("scrape.indeed_url", "https://www.indeed.com")
	v.SetDefault("scrape.linkedin_url", "https://www.linkedin.com")
	v.SetDefault("scrape.greenhouse_url", "https://boards-api.greenhouse.io")

	v.SetDefault("search.default_limit", DefaultSearchLimit)

	v.SetDefault("analysis.top_n", DefaultTopN)
	v.SetDefault("analysis.skills", []string{})

	v.SetDefault("report.output_dir", DefaultReportDir)

	v.SetDefault("log.theme", DefaultLogTheme)
}

// BindSensitiveEnvVars explicitly binds selected keys to environment variables.
// AutomaticEnv covers the rest through the RECRUITIQ_ prefix.
func BindSensitiveEnvVars(v *viper.Viper) {
	_ = v.BindEnv("database.path", "RECRUITIQ_DATABASE_PATH")
	_ = v.BindEnv("scrape.user_agent", "RECRUITIQ_SCRAPE_USER_AGENT")
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return DefaultDatabasePath
	}
	return c.Database.Path
}

// GetSearchLimit returns the default search result limit
func (c *Config) GetSearchLimit() int {
	if c.Search.DefaultLimit <= 0 {
		return DefaultSearchLimit
	}
	return c.Search.DefaultLimit
}

// GetTopN returns the length of top-N lists
func (c *Config) GetTopN() int {
	if c.Analysis.TopN <= 0 {
		return DefaultTopN
	}
	return c.Analysis.TopN
}

// GetReportDir returns the report output directory
func (c *Config) GetReportDir() string {
	if c.Report.OutputDir == "" {
		return DefaultReportDir
	}
	return c.Report.OutputDir
}

// GetScrapeLimit returns the default postings-per-source limit
func (c *Config) GetScrapeLimit() int {
	if c.Scrape.DefaultLimit <= 0 {
		return DefaultScrapeLimit
	}
	return c.Scrape.DefaultLimit
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Database: %s, Scrape: {DelayMS: %d, Limit: %d}, Search: {Limit: %d}}",
		c.Database.Path, c.Scrape.DelayMS, c.Scrape.DefaultLimit, c.Search.DefaultLimit)
}
