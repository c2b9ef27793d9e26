package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/teranos/recruitiq/posting"
)

// Search limits
const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// Filter selects active postings. Every set field narrows the result.
type Filter struct {
	Title          string   `json:"title,omitempty"`
	Location       string   `json:"location,omitempty"`
	Company        string   `json:"company,omitempty"`
	Platform       string   `json:"platform,omitempty"`
	EmploymentType string   `json:"employment_type,omitempty"`
	Keywords       string   `json:"keywords,omitempty"` // description or title
	MinSalary      *float64 `json:"min_salary,omitempty"`
	MaxSalary      *float64 `json:"max_salary,omitempty"`
	DaysAgo        int      `json:"days_ago,omitempty"` // 0 = any date
	Limit          int      `json:"limit,omitempty"`    // 0 = DefaultLimit, capped at MaxLimit
}

// EffectiveLimit returns the row limit Search will apply
func (f Filter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultLimit
	case f.Limit > MaxLimit:
		return MaxLimit
	default:
		return f.Limit
	}
}

// where renders the filter as a WHERE clause body and its arguments
func (f Filter) where(now time.Time) (string, []interface{}) {
	qb := &queryBuilder{}
	qb.addClause("is_active = 1")
	qb.buildSubstringFilter(f.Title, "title")
	qb.buildSubstringFilter(f.Location, "location")
	qb.buildSubstringFilter(f.Company, "company_name")
	qb.buildSubstringFilter(f.Platform, "source_platform")
	qb.buildSubstringFilter(f.EmploymentType, "employment_type")
	qb.buildSubstringFilter(f.Keywords, "job_description", "title")
	qb.buildSalaryFilter(f.MinSalary, f.MaxSalary)
	if f.DaysAgo > 0 {
		qb.buildRecencyFilter(now.AddDate(0, 0, -f.DaysAgo))
	}
	return qb.build(), qb.args
}

// Search returns active postings matching f, newest first.
// Undated postings sort after dated ones; ties break on id descending.
func (s *Store) Search(ctx context.Context, f Filter) ([]posting.Posting, error) {
	where, args := f.where(s.clock())
	query := fmt.Sprintf(`SELECT %s FROM job_postings WHERE %s
		ORDER BY posted_date IS NULL, posted_date DESC, id DESC LIMIT ?`, postingColumns, where)
	args = append(args, f.EffectiveLimit())

	s.logger.Debugw("Searching job postings", "query", where, "limit", f.EffectiveLimit())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryErr(err, "failed to search job postings")
	}
	defer rows.Close()

	results := make([]posting.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, queryErr(err, "failed to scan job posting")
		}
		results = append(results, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr(err, "failed to iterate job postings")
	}
	return results, nil
}
