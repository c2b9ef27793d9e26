package remoteok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/recruitiq/posting"
	"github.com/teranos/recruitiq/scrape"
)

const apiFixture = `[
  {"last_updated": 1780000000, "legal": "API Terms of Service"},
  {"id": "101", "epoch": 1780300000, "company": "Acme", "position": "Senior Go Engineer",
   "tags": ["golang", "kubernetes"], "description": "<p>Build <b>services</b></p><p>in Go</p>",
   "location": "Worldwide", "salary_min": 120000, "salary_max": 160000},
  {"id": 102, "epoch": 1780200000, "company": "Globex", "position": "Product Designer",
   "tags": ["figma"], "description": "Design things", "location": "", "salary_min": 0, "salary_max": 0},
  {"id": "103", "date": "2026-05-30T10:00:00+00:00", "company": "Initech", "position": "Backend Developer",
   "tags": ["python"], "description": "APIs with Django", "location": "Europe"}
]`

const htmlFixture = `<html><body><table id="jobsboard">
<tr class="job" data-id="201" data-href="/remote-jobs/201-go-dev">
  <td><a itemprop="url" href="/remote-jobs/201-go-dev#apply"><h2 itemprop="title"> Go Developer </h2></a>
  <h3 itemprop="name">Hooli</h3><div class="location">🌏 Worldwide</div>
  <div class="salary">$90k - $110k</div><time datetime="2026-05-28T08:00:00+00:00"></time></td>
  <td><a class="tag"><h3>golang</h3></a><a class="tag"><h3>aws</h3></a></td>
</tr>
<tr class="job" data-id="202"><td><h2 itemprop="title">Office Manager</h2><h3 itemprop="name">Pied Piper</h3></td></tr>
</table></body></html>`

func newTestScraper(t *testing.T, baseURL string) *Scraper {
	t.Helper()
	fetcher := scrape.NewFetcher(scrape.FetcherOptions{
		Timeout:      5 * time.Second,
		UserAgent:    "recruitiq-test",
		AllowPrivate: true,
	}, zaptest.NewLogger(t).Sugar())
	s := New(fetcher, baseURL, zaptest.NewLogger(t).Sugar())
	s.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestScrape_API(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(apiFixture))
	}))
	defer server.Close()

	s := newTestScraper(t, server.URL)
	got, err := s.Scrape(context.Background(), scrape.Query{})
	require.NoError(t, err)
	require.Len(t, got, 3, "legal notice element is skipped")

	first := got[0]
	assert.Equal(t, "Senior Go Engineer", first.Title)
	assert.Equal(t, "Acme", first.CompanyName)
	assert.Equal(t, "Worldwide", first.Location)
	assert.Equal(t, server.URL+"/job/101", first.URL)
	assert.Equal(t, Name, first.SourcePlatform)
	assert.Equal(t, posting.FullTime, first.EmploymentType)
	assert.Equal(t, "Build services in Go\n\nSkills: golang, kubernetes", first.JobDescription)
	require.NotNil(t, first.SalaryMin)
	assert.Equal(t, 120000.0, *first.SalaryMin)
	assert.Equal(t, 160000.0, *first.SalaryMax)
	require.NotNil(t, first.PostedDate)
	assert.Equal(t, time.Unix(1780300000, 0).UTC(), *first.PostedDate)

	assert.Equal(t, server.URL+"/job/102", got[1].URL, "numeric ids are accepted")
	assert.Equal(t, "Remote", got[1].Location)
	assert.Nil(t, got[1].SalaryMin, "zero salary means unknown")

	require.NotNil(t, got[2].PostedDate)
	assert.Equal(t, time.Date(2026, 5, 30, 10, 0, 0, 0, time.UTC), *got[2].PostedDate)
}

func TestScrape_APIKeywordFilterAndLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(apiFixture))
	}))
	defer server.Close()

	s := newTestScraper(t, server.URL)

	got, err := s.Scrape(context.Background(), scrape.Query{Keywords: "django figma"})
	require.NoError(t, err)
	require.Len(t, got, 2, "any query word matches")
	assert.Equal(t, "Product Designer", got[0].Title)
	assert.Equal(t, "Backend Developer", got[1].Title)

	got, err = s.Scrape(context.Background(), scrape.Query{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestScrape_FallsBackToHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api":
			w.WriteHeader(http.StatusForbidden)
		case "/remote-jobs":
			assert.Equal(t, "golang", r.URL.Query().Get("q"))
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(htmlFixture))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	s := newTestScraper(t, server.URL)
	got, err := s.Scrape(context.Background(), scrape.Query{Keywords: "golang"})
	require.NoError(t, err)
	require.Len(t, got, 1, "rows not matching the query are dropped")

	c := got[0]
	assert.Equal(t, "Go Developer", c.Title)
	assert.Equal(t, "Hooli", c.CompanyName)
	assert.Equal(t, server.URL+"/remote-jobs/201-go-dev", c.URL)
	assert.Equal(t, "Skills: golang, aws", c.JobDescription)
	require.NotNil(t, c.SalaryMin)
	assert.Equal(t, 90000.0, *c.SalaryMin)
	assert.Equal(t, 110000.0, *c.SalaryMax)
	require.NotNil(t, c.PostedDate)
	assert.Equal(t, time.Date(2026, 5, 28, 8, 0, 0, 0, time.UTC), *c.PostedDate)
}

func TestScrape_BothFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	got, err := newTestScraper(t, server.URL).Scrape(context.Background(), scrape.Query{})
	require.Error(t, err)
	assert.Empty(t, got, "no synthetic postings on failure")
	assert.Contains(t, err.Error(), "RemoteOK HTML")
}
