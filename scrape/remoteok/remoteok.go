// Package remoteok scrapes remoteok.com. The public JSON API is tried first;
// when it fails the HTML job table is parsed instead.
package remoteok

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/posting"
	"github.com/teranos/recruitiq/scrape"
)

const (
	// Name is the source_platform of RemoteOK postings
	Name = "RemoteOK"

	DefaultBaseURL = "https://remoteok.com"
)

// Scraper fetches remote jobs from RemoteOK
type Scraper struct {
	fetcher *scrape.Fetcher
	baseURL string
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// New creates a RemoteOK scraper; an empty baseURL uses DefaultBaseURL
func New(fetcher *scrape.Fetcher, baseURL string, logger *zap.SugaredLogger) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Scraper{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Scraper) Name() string { return Name }

// Scrape returns postings whose position, company, description or tags
// contain any word of q.Keywords. RemoteOK has no location search.
func (s *Scraper) Scrape(ctx context.Context, q scrape.Query) ([]posting.Candidate, error) {
	candidates, apiErr := s.scrapeAPI(ctx, q)
	if apiErr == nil {
		return candidates, nil
	}
	if ctx.Err() != nil {
		return nil, apiErr
	}
	s.logger.Warnw("RemoteOK API failed, falling back to HTML", "error", apiErr)

	candidates, htmlErr := s.scrapeHTML(ctx, q)
	if htmlErr != nil {
		return candidates, errors.WithSecondaryError(htmlErr, apiErr)
	}
	return candidates, nil
}

// apiJob is one element of the /api array. The first element is a legal notice.
type apiJob struct {
	ID          flexString `json:"id"`
	Epoch       int64      `json:"epoch"`
	Date        string     `json:"date"`
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	Tags        []string   `json:"tags"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	SalaryMin   float64    `json:"salary_min"`
	SalaryMax   float64    `json:"salary_max"`
	URL         string     `json:"url"`
	Legal       string     `json:"legal"`
}

// flexString accepts both JSON strings and numbers
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Wrapf(err, "id %s is neither string nor number", string(b))
	}
	*f = flexString(n.String())
	return nil
}

func (s *Scraper) scrapeAPI(ctx context.Context, q scrape.Query) ([]posting.Candidate, error) {
	var jobs []apiJob
	if err := s.fetcher.GetJSON(ctx, s.baseURL+"/api", &jobs); err != nil {
		return nil, errors.Wrap(err, "RemoteOK API")
	}

	out := scrape.NewCandidates(q.Limit)
	for _, j := range jobs {
		if j.Legal != "" || j.ID == "" || j.Position == "" {
			continue
		}
		if !scrape.MatchesKeywords(q.Keywords, j.Position, j.Company, j.Description, strings.Join(j.Tags, " ")) {
			continue
		}
		if !out.Add(s.fromAPI(j)) {
			break
		}
	}
	return out.Items(), nil
}

func (s *Scraper) fromAPI(j apiJob) posting.Candidate {
	description := scrape.HTMLToText(j.Description)
	if len(j.Tags) > 0 {
		description += "\n\nSkills: " + strings.Join(j.Tags, ", ")
	}

	c := posting.Candidate{
		Title:          posting.CleanText(j.Position),
		CompanyName:    posting.CleanText(j.Company),
		Location:       posting.CleanText(j.Location),
		SalaryCurrency: posting.DefaultCurrency,
		EmploymentType: posting.FullTime,
		JobDescription: description,
		SourcePlatform: Name,
		URL:            s.baseURL + "/job/" + url.PathEscape(string(j.ID)),
	}
	if c.Location == "" {
		c.Location = "Remote"
	}
	if j.SalaryMin > 0 {
		c.SalaryMin = &j.SalaryMin
	}
	if j.SalaryMax > 0 {
		c.SalaryMax = &j.SalaryMax
	}

	switch {
	case j.Epoch > 0:
		t := time.Unix(j.Epoch, 0).UTC()
		c.PostedDate = &t
	case j.Date != "":
		if t, err := time.Parse(time.RFC3339, j.Date); err == nil {
			t = t.UTC()
			c.PostedDate = &t
		}
	}
	return c
}

// scrapeHTML parses the job table of the /remote-jobs page
func (s *Scraper) scrapeHTML(ctx context.Context, q scrape.Query) ([]posting.Candidate, error) {
	out := scrape.NewCandidates(q.Limit)
	now := s.now()

	c := s.fetcher.NewCollector()
	c.OnHTML("tr.job", func(e *colly.HTMLElement) {
		if out.Full() {
			return
		}
		title := scrape.FirstText(e.DOM, `h2[itemprop="title"]`, "h2")
		company := scrape.FirstText(e.DOM, `h3[itemprop="name"]`, "h3")
		tags := scrape.AllText(e.DOM, ".tag")

		href := scrape.FirstAttr(e.DOM, "href", `a[itemprop="url"]`, "a.preventLink")
		if href == "" {
			href = e.Attr("data-href")
		}
		if href == "" {
			if id := e.Attr("data-id"); id != "" {
				href = "/job/" + id
			}
		}
		if title == "" || href == "" {
			return
		}
		if !scrape.MatchesKeywords(q.Keywords, title, company, strings.Join(tags, " ")) {
			return
		}

		cand := posting.Candidate{
			Title:          title,
			CompanyName:    company,
			Location:       scrape.FirstText(e.DOM, ".location"),
			EmploymentType: posting.FullTime,
			SourcePlatform: Name,
			URL:            scrape.ResolveURL(s.baseURL+"/", href),
		}
		if cand.Location == "" {
			cand.Location = "Remote"
		}
		if len(tags) > 0 {
			cand.JobDescription = "Skills: " + strings.Join(tags, ", ")
		}

		salary := posting.ParseSalary(scrape.FirstText(e.DOM, ".salary"))
		cand.SalaryMin, cand.SalaryMax, cand.SalaryCurrency = salary.Min, salary.Max, salary.Currency

		if dt := scrape.FirstAttr(e.DOM, "datetime", "time"); dt != "" {
			if t, err := time.Parse(time.RFC3339, dt); err == nil {
				t = t.UTC()
				cand.PostedDate = &t
			}
		} else if t, ok := posting.ParseDate(scrape.FirstText(e.DOM, "time", ".time"), now); ok {
			cand.PostedDate = &t
		}
		out.Add(cand)
	})

	target := s.baseURL + "/remote-jobs"
	if kw := strings.TrimSpace(q.Keywords); kw != "" {
		target += "?" + url.Values{"q": {kw}}.Encode()
	}
	if err := s.fetcher.Visit(ctx, c, target); err != nil {
		return out.Items(), errors.Wrap(err, "RemoteOK HTML")
	}
	return out.Items(), nil
}

// compile-time check
var _ scrape.Scraper = (*Scraper)(nil)
