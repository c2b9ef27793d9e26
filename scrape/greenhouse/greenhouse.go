// Package greenhouse reads company career sites hosted on Greenhouse through
// the public job board API. Postings are stored under "<Company> Careers".
package greenhouse

import (
	"context"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/posting"
	"github.com/teranos/recruitiq/scrape"
)

const (
	Name           = "Greenhouse"
	DefaultBaseURL = "https://boards-api.greenhouse.io"
)

// Scraper fetches one company's board per Scrape call; Query.Company is the board token
type Scraper struct {
	fetcher *scrape.Fetcher
	baseURL string
	logger  *zap.SugaredLogger
}

// New creates a Greenhouse scraper; an empty baseURL uses DefaultBaseURL
func New(fetcher *scrape.Fetcher, baseURL string, logger *zap.SugaredLogger) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Scraper{fetcher: fetcher, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}
}

func (s *Scraper) Name() string { return Name }

type board struct {
	Name string `json:"name"`
}

type boardJobs struct {
	Jobs []boardJob `json:"jobs"`
}

type boardJob struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	AbsoluteURL    string `json:"absolute_url"`
	UpdatedAt      string `json:"updated_at"`
	FirstPublished string `json:"first_published"`
	Content        string `json:"content"`
	Location       struct {
		Name string `json:"name"`
	} `json:"location"`
	Metadata []struct {
		Name  string      `json:"name"`
		Value interface{} `json:"value"`
	} `json:"metadata"`
}

// Scrape returns the board's jobs matching any word of q.Keywords
func (s *Scraper) Scrape(ctx context.Context, q scrape.Query) ([]posting.Candidate, error) {
	token := strings.ToLower(strings.TrimSpace(q.Company))
	if token == "" {
		return nil, errors.NewInvalidRequestError("company board token is required")
	}
	boardURL := s.baseURL + "/v1/boards/" + url.PathEscape(token)

	company := s.companyName(ctx, boardURL, token)

	var jobs boardJobs
	if err := s.fetcher.GetJSON(ctx, boardURL+"/jobs?content=true", &jobs); err != nil {
		return nil, errors.Wrapf(err, "Greenhouse board %s", token)
	}

	out := scrape.NewCandidates(q.Limit)
	for _, j := range jobs.Jobs {
		// content arrives as escaped HTML
		description := scrape.HTMLToText(html.UnescapeString(j.Content))
		if !scrape.MatchesKeywords(q.Keywords, j.Title, description) {
			continue
		}
		if !out.Add(fromBoardJob(j, company, description)) {
			break
		}
	}
	return out.Items(), nil
}

// companyName reads the board's display name, falling back to the token
func (s *Scraper) companyName(ctx context.Context, boardURL, token string) string {
	var b board
	if err := s.fetcher.GetJSON(ctx, boardURL, &b); err != nil || strings.TrimSpace(b.Name) == "" {
		s.logger.Debugw("Board name unavailable, using token", "company", token, "error", err)
		return strings.ToUpper(token[:1]) + token[1:]
	}
	return posting.CleanText(b.Name)
}

func fromBoardJob(j boardJob, company, description string) posting.Candidate {
	c := posting.Candidate{
		Title:          posting.CleanText(j.Title),
		CompanyName:    company,
		Location:       posting.CleanText(j.Location.Name),
		JobDescription: description,
		EmploymentType: employmentType(j, description),
		SourcePlatform: company + " Careers",
		URL:            strings.TrimSpace(j.AbsoluteURL),
	}

	salary := posting.ParseSalary(salaryText(description))
	c.SalaryMin, c.SalaryMax, c.SalaryCurrency = salary.Min, salary.Max, salary.Currency

	for _, raw := range []string{j.FirstPublished, j.UpdatedAt} {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			t = t.UTC()
			c.PostedDate = &t
			break
		}
	}
	return c
}

// employmentType prefers an explicit board metadata field over text heuristics
func employmentType(j boardJob, description string) string {
	for _, m := range j.Metadata {
		if !strings.Contains(strings.ToLower(m.Name), "employment") {
			continue
		}
		if v, ok := m.Value.(string); ok {
			if kind := posting.ExtractEmploymentType(v); kind != "" {
				return kind
			}
		}
	}
	return posting.ExtractEmploymentType(j.Title + " " + description)
}

var sentenceBreak = regexp.MustCompile(`[.;!]\s+|\n`)

// salaryText returns the first sentence that mentions a currency figure, or ""
func salaryText(description string) string {
	for _, sentence := range sentenceBreak.Split(description, -1) {
		if strings.ContainsAny(sentence, "$€£") {
			return sentence
		}
	}
	return ""
}

// compile-time check
var _ scrape.Scraper = (*Scraper)(nil)
