package posting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/recruitiq/errors"
)

func TestDecodeCandidate(t *testing.T) {
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

	c, err := DecodeCandidate(map[string]interface{}{
		"title":           "Data Engineer",
		"company":         "Globex",
		"location":        "Remote",
		"salary_min":      "100000",
		"salary_max":      130000,
		"posted_date":     "2026-05-18T08:00:00Z",
		"description":     "Spark and Python",
		"source_platform": "RemoteOK",
		"url":             "https://remoteok.com/remote-jobs/1",
		"tags":            []interface{}{"python"},
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "Data Engineer", c.Title)
	assert.Equal(t, "Globex", c.CompanyName)
	assert.Equal(t, "Spark and Python", c.JobDescription)
	require.NotNil(t, c.SalaryMin)
	assert.Equal(t, 100000.0, *c.SalaryMin)
	require.NotNil(t, c.SalaryMax)
	assert.Equal(t, 130000.0, *c.SalaryMax)
	require.NotNil(t, c.PostedDate)
	assert.True(t, time.Date(2026, 5, 18, 8, 0, 0, 0, time.UTC).Equal(*c.PostedDate))
}

func TestDecodeCandidate_RelativeDateAndBlanks(t *testing.T) {
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

	c, err := DecodeCandidate(map[string]interface{}{
		"title":       "QA Analyst",
		"posted_date": "2 days ago",
		"salary_min":  "",
		"location":    nil,
	}, now)
	require.NoError(t, err)

	require.NotNil(t, c.PostedDate)
	assert.True(t, now.Add(-48*time.Hour).Equal(*c.PostedDate))
	assert.Nil(t, c.SalaryMin, "blank salary is absent, not zero")
	assert.Empty(t, c.Location)
}

func TestDecodeCandidate_CanonicalKeyWins(t *testing.T) {
	c, err := DecodeCandidate(map[string]interface{}{
		"job_description": "canonical",
		"description":     "alias",
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "canonical", c.JobDescription)
}

func TestDecodeCandidate_NonNumericSalary(t *testing.T) {
	_, err := DecodeCandidate(map[string]interface{}{
		"title":      "Backend Developer",
		"salary_min": "lots",
	}, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestDecodeCandidate_BadDate(t *testing.T) {
	_, err := DecodeCandidate(map[string]interface{}{
		"title":       "Backend Developer",
		"posted_date": "sometime soon",
	}, time.Now())
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Reason, "sometime soon")
}

func TestDecodeCandidate_RejectsBoolAndNumberCoercion(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		value  interface{}
		reason string
	}{
		{"bool salary_min", FieldSalaryMin, true, "boolean"},
		{"bool salary_max", FieldSalaryMax, false, "boolean"},
		{"bool title", FieldTitle, true, "boolean"},
		{"number title", FieldTitle, 12, "expected text"},
		{"float company", FieldCompanyName, 3.5, "expected text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]interface{}{
				"title":           "Backend Developer",
				"company_name":    "Acme",
				"source_platform": "Indeed",
				"url":             "https://indeed.com/viewjob?jk=1",
			}
			raw[tt.field] = tt.value

			_, err := DecodeCandidate(raw, time.Now())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Reason, tt.reason)
		})
	}
}

func TestDecodeCandidate_NumbersStillCoerceToSalary(t *testing.T) {
	c, err := DecodeCandidate(map[string]interface{}{
		"salary_min": 90000,
		"salary_max": "120000.50",
	}, time.Now())
	require.NoError(t, err)
	require.NotNil(t, c.SalaryMin)
	assert.Equal(t, 90000.0, *c.SalaryMin)
	require.NotNil(t, c.SalaryMax)
	assert.Equal(t, 120000.5, *c.SalaryMax)
}
