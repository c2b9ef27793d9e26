// Package linkedin scrapes LinkedIn's public (logged-out) job search pages
package linkedin

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/posting"
	"github.com/teranos/recruitiq/scrape"
)

const (
	Name           = "LinkedIn"
	DefaultBaseURL = "https://www.linkedin.com"

	pageSize = 25
	maxPages = 4
)

// Scraper parses job cards from LinkedIn search result pages
type Scraper struct {
	fetcher *scrape.Fetcher
	baseURL string
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// New creates a LinkedIn scraper; an empty baseURL uses DefaultBaseURL
func New(fetcher *scrape.Fetcher, baseURL string, logger *zap.SugaredLogger) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Scraper{fetcher: fetcher, baseURL: strings.TrimRight(baseURL, "/"), logger: logger, now: time.Now}
}

func (s *Scraper) Name() string { return Name }

func (s *Scraper) Scrape(ctx context.Context, q scrape.Query) ([]posting.Candidate, error) {
	out := scrape.NewCandidates(q.Limit)
	seen := make(map[string]bool)
	now := s.now()
	pageCards := 0

	c := s.fetcher.NewCollector()
	// Cards carry both classes on current markup and one of them on older pages
	c.OnHTML(".base-card, .job-search-card", func(e *colly.HTMLElement) {
		pageCards++
		if out.Full() {
			return
		}
		cand, ok := s.parseCard(e, now)
		if !ok || seen[cand.URL] {
			return
		}
		seen[cand.URL] = true
		out.Add(cand)
	})

	pages := maxPages
	if q.Limit > 0 {
		pages = min((q.Limit+pageSize-1)/pageSize, maxPages)
	}
	for page := 0; page < pages && !out.Full(); page++ {
		if err := ctx.Err(); err != nil {
			return out.Items(), errors.Wrap(err, "LinkedIn scrape cancelled")
		}
		pageCards = 0
		if err := s.fetcher.Visit(ctx, c, s.searchURL(q, page*pageSize)); err != nil {
			return out.Items(), errors.Wrapf(err, "LinkedIn page %d", page+1)
		}
		s.logger.Debugw("Parsed LinkedIn page", "page", page+1, "cards", pageCards, "count", len(out.Items()))
		if pageCards == 0 {
			break
		}
	}
	return out.Items(), nil
}

func (s *Scraper) searchURL(q scrape.Query, start int) string {
	v := url.Values{}
	v.Set("keywords", q.Keywords)
	v.Set("location", q.Location)
	if start > 0 {
		v.Set("start", strconv.Itoa(start))
	}
	return s.baseURL + "/jobs/search?" + v.Encode()
}

func (s *Scraper) parseCard(e *colly.HTMLElement, now time.Time) (posting.Candidate, bool) {
	title := scrape.FirstText(e.DOM, ".base-search-card__title", "h3")
	company := scrape.FirstText(e.DOM, ".base-search-card__subtitle", "h4")
	href := scrape.FirstAttr(e.DOM, "href", "a.base-card__full-link", "a")
	if href == "" {
		href = e.Attr("href")
	}
	if title == "" || company == "" || href == "" {
		return posting.Candidate{}, false
	}

	c := posting.Candidate{
		Title:          title,
		CompanyName:    company,
		Location:       scrape.FirstText(e.DOM, ".job-search-card__location"),
		EmploymentType: posting.ExtractEmploymentType(title),
		SourcePlatform: Name,
		URL:            canonicalURL(scrape.ResolveURL(s.baseURL+"/", href)),
	}

	salary := posting.ParseSalary(scrape.FirstText(e.DOM, ".job-search-card__salary-info"))
	c.SalaryMin, c.SalaryMax, c.SalaryCurrency = salary.Min, salary.Max, salary.Currency

	if dt := scrape.FirstAttr(e.DOM, "datetime", "time"); dt != "" {
		if t, ok := posting.ParseDate(dt, now); ok {
			c.PostedDate = &t
		}
	} else if t, ok := posting.ParseDate(scrape.FirstText(e.DOM, "time"), now); ok {
		c.PostedDate = &t
	}
	return c, true
}

// canonicalURL drops tracking query parameters so re-scrapes hit the same natural key
func canonicalURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// compile-time check
var _ scrape.Scraper = (*Scraper)(nil)
