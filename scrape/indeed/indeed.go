// Package indeed scrapes Indeed search result pages
package indeed

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
	Name           = "Indeed"
	DefaultBaseURL = "https://www.indeed.com"

	pageSize = 10
	maxPages = 10
)

var (
	titleSelectors    = []string{"h2.jobTitle a span", "h2 a span[title]", ".jobTitle a", `[data-testid="job-title"]`, "h2"}
	companySelectors  = []string{`[data-testid="company-name"]`, ".companyName"}
	locationSelectors = []string{`[data-testid="job-location"]`, ".companyLocation"}
	salarySelectors   = []string{`[data-testid="salary-snippet"]`, ".salary-snippet", ".estimated-salary", ".salary-snippet-container"}
	snippetSelectors  = []string{`[data-testid="job-snippet"]`, ".job-snippet", ".summary"}
	dateSelectors     = []string{`[data-testid="myJobsStateDate"]`, ".date"}
)

// Scraper walks Indeed result pages until the limit is met or a page comes back empty
type Scraper struct {
	fetcher *scrape.Fetcher
	baseURL string
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// New creates an Indeed scraper; an empty baseURL uses DefaultBaseURL
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
	c.OnHTML("div[data-jk]", func(e *colly.HTMLElement) {
		pageCards++
		jk := strings.TrimSpace(e.Attr("data-jk"))
		if jk == "" || seen[jk] || out.Full() {
			return
		}
		seen[jk] = true
		if cand, ok := s.parseCard(e, jk, now); ok {
			out.Add(cand)
		}
	})

	pages := maxPages
	if q.Limit > 0 {
		pages = min((q.Limit+pageSize-1)/pageSize, maxPages)
	}
	for page := 0; page < pages && !out.Full(); page++ {
		if err := ctx.Err(); err != nil {
			return out.Items(), errors.Wrap(err, "Indeed scrape cancelled")
		}
		pageCards = 0
		target := s.searchURL(q, page*pageSize)
		if err := s.fetcher.Visit(ctx, c, target); err != nil {
			return out.Items(), errors.Wrapf(err, "Indeed page %d", page+1)
		}
		s.logger.Debugw("Parsed Indeed page", "page", page+1, "cards", pageCards, "count", len(out.Items()))
		if pageCards == 0 {
			break
		}
	}
	return out.Items(), nil
}

func (s *Scraper) searchURL(q scrape.Query, start int) string {
	v := url.Values{}
	v.Set("q", q.Keywords)
	v.Set("l", q.Location)
	v.Set("start", strconv.Itoa(start))
	return s.baseURL + "/jobs?" + v.Encode()
}

func (s *Scraper) parseCard(e *colly.HTMLElement, jk string, now time.Time) (posting.Candidate, bool) {
	title := scrape.FirstText(e.DOM, titleSelectors...)
	company := scrape.FirstText(e.DOM, companySelectors...)
	if title == "" || company == "" {
		s.logger.Debugw("Skipping incomplete Indeed card", "jk", jk)
		return posting.Candidate{}, false
	}
	snippet := scrape.FirstText(e.DOM, snippetSelectors...)

	c := posting.Candidate{
		Title:          title,
		CompanyName:    company,
		Location:       scrape.FirstText(e.DOM, locationSelectors...),
		JobDescription: snippet,
		EmploymentType: posting.ExtractEmploymentType(title + " " + snippet),
		SourcePlatform: Name,
		URL:            s.baseURL + "/viewjob?jk=" + url.QueryEscape(jk),
	}

	salary := posting.ParseSalary(scrape.FirstText(e.DOM, salarySelectors...))
	c.SalaryMin, c.SalaryMax, c.SalaryCurrency = salary.Min, salary.Max, salary.Currency

	if t, ok := posting.ParseDate(scrape.FirstText(e.DOM, dateSelectors...), now); ok {
		c.PostedDate = &t
	}
	return c, true
}

// compile-time check
var _ scrape.Scraper = (*Scraper)(nil)
