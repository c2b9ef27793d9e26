package posting

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/internal/util"
)

func validCandidate() Candidate {
	return Candidate{
		Title:          "Senior Go Engineer",
		CompanyName:    "Acme",
		SourcePlatform: "Indeed",
		URL:            "https://www.indeed.com/viewjob?jk=abc123",
	}
}

func TestNewPosting_Defaults(t *testing.T) {
	c := validCandidate()
	c.Title = "  Senior Go Engineer  "
	c.Location = "   "
	c.JobDescription = " Build services in Go. "

	p, err := NewPosting(c)
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Engineer", p.Title)
	assert.Nil(t, p.Location, "blank optional strings become nil")
	require.NotNil(t, p.JobDescription)
	assert.Equal(t, "Build services in Go.", *p.JobDescription)
	assert.Equal(t, DefaultCurrency, p.SalaryCurrency)
	assert.True(t, p.IsActive)
	assert.Zero(t, p.ID)

	assert.Equal(t, "  Senior Go Engineer  ", c.Title, "candidate must not be modified")
}

func TestNewPosting_CopiesPointers(t *testing.T) {
	c := validCandidate()
	c.SalaryMin = util.Ptr(100000.0)
	posted := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("EST", -5*3600))
	c.PostedDate = &posted

	p, err := NewPosting(c)
	require.NoError(t, err)

	*c.SalaryMin = 1
	assert.Equal(t, 100000.0, *p.SalaryMin)
	assert.Equal(t, time.UTC, p.PostedDate.Location())
	assert.True(t, posted.Equal(*p.PostedDate))
}

func TestNewPosting_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Candidate)
		field  string // empty = valid
	}{
		{"title length 1 rejected", func(c *Candidate) { c.Title = "A" }, FieldTitle},
		{"title length 2 accepted", func(c *Candidate) { c.Title = "QA" }, ""},
		{"title length 200 accepted", func(c *Candidate) { c.Title = strings.Repeat("x", 200) }, ""},
		{"title length 201 rejected", func(c *Candidate) { c.Title = strings.Repeat("x", 201) }, FieldTitle},
		{"title counted in runes", func(c *Candidate) { c.Title = strings.Repeat("é", 200) }, ""},
		{"whitespace title rejected", func(c *Candidate) { c.Title = "   " }, FieldTitle},
		{"company required", func(c *Candidate) { c.CompanyName = " " }, FieldCompanyName},
		{"company length 1 accepted", func(c *Candidate) { c.CompanyName = "X" }, ""},
		{"company length 201 rejected", func(c *Candidate) { c.CompanyName = strings.Repeat("c", 201) }, FieldCompanyName},
		{"location length 201 rejected", func(c *Candidate) { c.Location = strings.Repeat("l", 201) }, FieldLocation},
		{"description 10000 accepted", func(c *Candidate) { c.JobDescription = strings.Repeat("d", 10000) }, ""},
		{"description 10001 rejected", func(c *Candidate) { c.JobDescription = strings.Repeat("d", 10001) }, FieldJobDescription},
		{"salary_min 1,000,000 accepted", func(c *Candidate) { c.SalaryMin = util.Ptr(1000000.0) }, ""},
		{"salary_min 1,000,001 rejected", func(c *Candidate) { c.SalaryMin = util.Ptr(1000001.0) }, FieldSalaryMin},
		{"salary_min 0 accepted", func(c *Candidate) { c.SalaryMin = util.Ptr(0.0) }, ""},
		{"negative salary_max rejected", func(c *Candidate) { c.SalaryMax = util.Ptr(-1.0) }, FieldSalaryMax},
		{"NaN salary rejected", func(c *Candidate) { c.SalaryMin = util.Ptr(math.NaN()) }, FieldSalaryMin},
		{"infinite salary rejected", func(c *Candidate) { c.SalaryMax = util.Ptr(math.Inf(1)) }, FieldSalaryMax},
		{"min above max allowed", func(c *Candidate) { c.SalaryMin, c.SalaryMax = util.Ptr(200.0), util.Ptr(100.0) }, ""},
		{"platform required", func(c *Candidate) { c.SourcePlatform = "" }, FieldSourcePlatform},
		{"url required", func(c *Candidate) { c.URL = "" }, FieldURL},
		{"url must be http", func(c *Candidate) { c.URL = "ftp://example.com/job" }, FieldURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(&c)

			p, err := NewPosting(c)
			if tt.field == "" {
				require.NoError(t, err)
				assert.NotNil(t, p)
				return
			}
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ErrInvalid))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestNewPosting_CurrencyUppercased(t *testing.T) {
	c := validCandidate()
	c.SalaryCurrency = " eur "
	p, err := NewPosting(c)
	require.NoError(t, err)
	assert.Equal(t, "EUR", p.SalaryCurrency)
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"http://x.com/1",
		"https://remoteok.com/remote-jobs/123",
		"HTTPS://WWW.LINKEDIN.COM/jobs/view/42",
		"http://localhost:8080/jobs",
		"http://192.168.1.10/path?q=1",
		"https://boards.greenhouse.io/stripe/jobs/99?gh_jid=99",
		"https://example.co.uk",
	}
	for _, u := range valid {
		assert.True(t, ValidateURL(u), u)
	}

	invalid := []string{
		"",
		"example.com",
		"ftp://example.com",
		"javascript:alert(1)",
		"http://",
		"http://exa mple.com",
		"http://example.c/path",
		"https://example.com/has space",
	}
	for _, u := range invalid {
		assert.False(t, ValidateURL(u), u)
	}
}

func TestPostingHelpers(t *testing.T) {
	p := &Posting{URL: "https://a.io/1", SourcePlatform: "RemoteOK"}
	url, platform := p.Key()
	assert.Equal(t, "https://a.io/1", url)
	assert.Equal(t, "RemoteOK", platform)
	assert.False(t, p.HasSalary())
	assert.Equal(t, "", p.Description())
	assert.Equal(t, "Remote", p.LocationOr("Remote"))

	p.SalaryMax = util.Ptr(5.0)
	p.Location = util.Ptr("Berlin")
	assert.True(t, p.HasSalary())
	assert.Equal(t, "Berlin", p.LocationOr("Remote"))
}
