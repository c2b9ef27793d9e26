package am

import (
	"net/url"

	"github.com/teranos/recruitiq/errors"
)

// maxSearchLimit mirrors the storage query cap
const maxSearchLimit = 1000

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Database path is optional - empty falls back to DefaultDatabasePath

	// Scrape delay: 0 = no delay (zero means zero), negative = invalid
	if c.Scrape.DelayMS < 0 {
		return errors.Newf("scrape.delay_ms must be >= 0, got %d", c.Scrape.DelayMS)
	}
	if c.Scrape.TimeoutSeconds <= 0 {
		return errors.Newf("scrape.timeout_seconds must be > 0, got %d", c.Scrape.TimeoutSeconds)
	}
	if c.Scrape.DefaultLimit < 0 {
		return errors.Newf("scrape.default_limit must be >= 0, got %d", c.Scrape.DefaultLimit)
	}

	for key, raw := range map[string]string{
		"scrape.remoteok_url":   c.Scrape.RemoteOKURL,
		"scrape.indeed_url":     c.Scrape.IndeedURL,
		"scrape.linkedin_url":   c.Scrape.LinkedInURL,
		"scrape.greenhouse_url": c.Scrape.GreenhouseURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.Newf("%s must be an http(s) URL, got %q", key, raw)
		}
	}

	if c.Search.DefaultLimit < 0 || c.Search.DefaultLimit > maxSearchLimit {
		return errors.Newf("search.default_limit must be between 0 and %d, got %d", maxSearchLimit, c.Search.DefaultLimit)
	}

	if c.Analysis.TopN < 0 {
		return errors.Newf("analysis.top_n must be >= 0, got %d", c.Analysis.TopN)
	}
	for i, skill := range c.Analysis.Skills {
		if skill == "" {
			return errors.Newf("analysis.skills[%d] cannot be empty", i)
		}
	}

	if c.Log.Theme != "" && c.Log.Theme != "everforest" && c.Log.Theme != "gruvbox" {
		return errors.Newf("log.theme must be everforest or gruvbox, got %q", c.Log.Theme)
	}

	return nil
}
