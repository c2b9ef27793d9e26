// Package scrape collects job postings from job boards and company career
// sites and feeds them through the storage upsert pipeline, one source at a
// time with a politeness delay between requests.
package scrape

import (
	"context"
	"strings"

	"github.com/teranos/recruitiq/posting"
)

// Query parameterizes one scrape of one source
type Query struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
	Limit    int    `json:"limit"`
	Company  string `json:"company,omitempty"` // board token for company career sites
}

// Scraper fetches candidates from one source. A scraper may return the
// candidates it collected together with the error that stopped it.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context, q Query) ([]posting.Candidate, error)
}

// MatchesKeywords reports whether any keyword word occurs in text.
// An empty keyword string matches everything.
func MatchesKeywords(keywords string, text ...string) bool {
	words := strings.Fields(strings.ToLower(keywords))
	if len(words) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join(text, " "))
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}

// Cap truncates candidates to limit when limit is positive
func Cap(candidates []posting.Candidate, limit int) []posting.Candidate {
	if limit > 0 && len(candidates) > limit {
		return candidates[:limit]
	}
	return candidates
}
