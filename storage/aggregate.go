package storage

import (
	"context"
	"time"

	"github.com/teranos/recruitiq/errors"
)

// TopNLimit is the list length used by summaries and reports
const TopNLimit = 10

// GroupField is a column postings can be counted by
type GroupField string

const (
	GroupTitle          GroupField = "title"
	GroupCompany        GroupField = "company_name"
	GroupLocation       GroupField = "location"
	GroupPlatform       GroupField = "source_platform"
	GroupEmploymentType GroupField = "employment_type"
	GroupCity           GroupField = "city" // location up to the first comma
)

// cityExpr derives the city from a "City, Region" location
const cityExpr = `trim(CASE WHEN instr(location, ',') > 0 THEN substr(location, 1, instr(location, ',') - 1) ELSE location END)`

// Valid reports whether f names a groupable column
func (f GroupField) Valid() bool {
	switch f {
	case GroupTitle, GroupCompany, GroupLocation, GroupPlatform, GroupEmploymentType, GroupCity:
		return true
	}
	return false
}

// expr returns the SQL expression grouped on
func (f GroupField) expr() string {
	if f == GroupCity {
		return cityExpr
	}
	return string(f)
}

// LabelCount is one row of a count-by-group aggregate
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SalarySample holds the salary_min values used for statistics
type SalarySample struct {
	Values     []float64 `json:"values"`      // positive salary_min values
	WithSalary int       `json:"with_salary"` // rows with any salary_min, including 0
	Ranged     int       `json:"ranged"`      // rows whose salary_max differs from salary_min
}

// CountBy counts active postings per distinct value of field, most common
// first. limit <= 0 returns every group. NULL values are excluded.
func (s *Store) CountBy(ctx context.Context, field GroupField, limit int) ([]LabelCount, error) {
	return s.countBy(ctx, field, "is_active = 1", nil, limit)
}

// CountBySince is CountBy restricted to postings dated at or after since
func (s *Store) CountBySince(ctx context.Context, field GroupField, since time.Time, limit int) ([]LabelCount, error) {
	qb := &queryBuilder{}
	qb.addClause("is_active = 1")
	qb.buildRecencyFilter(since)
	return s.countBy(ctx, field, qb.build(), qb.args, limit)
}

// CountByFilter is CountBy over the postings f selects; f.Limit is ignored
func (s *Store) CountByFilter(ctx context.Context, field GroupField, f Filter, limit int) ([]LabelCount, error) {
	return s.CountByIn(ctx, field, f, limit)
}

// TopN returns the TopNLimit most common values of field
func (s *Store) TopN(ctx context.Context, field GroupField) ([]LabelCount, error) {
	return s.CountBy(ctx, field, TopNLimit)
}

func (s *Store) countBy(ctx context.Context, field GroupField, where string, args []interface{}, limit int) ([]LabelCount, error) {
	if !field.Valid() {
		return nil, errors.NewInvalidRequestError("cannot group job postings by %q", string(field))
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	expr := field.expr()
	query := `SELECT ` + expr + ` AS label, COUNT(*) AS n FROM job_postings WHERE ` + where +
		` AND ` + expr + ` IS NOT NULL AND ` + expr + ` <> ''` +
		` GROUP BY label ORDER BY n DESC, label ASC LIMIT ?`
	args = append(append([]interface{}{}, args...), limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryErr(err, "failed to count job postings by %s", field)
	}
	defer rows.Close()

	counts := make([]LabelCount, 0)
	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, queryErr(err, "failed to scan %s count", field)
		}
		counts = append(counts, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr(err, "failed to iterate %s counts", field)
	}
	return counts, nil
}

// SalarySample collects salary_min values of active postings
func (s *Store) SalarySample(ctx context.Context) (SalarySample, error) {
	return s.SalarySampleIn(ctx, Filter{})
}

// SalarySampleIn collects salary_min values of the postings in sc
func (s *Store) SalarySampleIn(ctx context.Context, sc Scope) (SalarySample, error) {
	sample := SalarySample{Values: make([]float64, 0)}

	where, args := sc.where(s.clock())
	rows, err := s.db.QueryContext(ctx, `SELECT salary_min, salary_max FROM job_postings
		WHERE `+where+` AND salary_min IS NOT NULL`, args...)
	if err != nil {
		return sample, queryErr(err, "failed to load salaries")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			min float64
			max *float64
		)
		if err := rows.Scan(&min, &max); err != nil {
			return sample, queryErr(err, "failed to scan salary")
		}
		sample.WithSalary++
		if min <= 0 {
			continue
		}
		sample.Values = append(sample.Values, min)
		if max != nil && *max != min {
			sample.Ranged++
		}
	}
	if err := rows.Err(); err != nil {
		return sample, queryErr(err, "failed to iterate salaries")
	}
	return sample, nil
}

// Descriptions returns the job descriptions of active postings that have one
func (s *Store) Descriptions(ctx context.Context) ([]string, error) {
	return s.DescriptionsIn(ctx, Filter{})
}

// DescriptionsIn returns the job descriptions of the postings in sc
func (s *Store) DescriptionsIn(ctx context.Context, sc Scope) ([]string, error) {
	where, args := sc.where(s.clock())
	rows, err := s.db.QueryContext(ctx, `SELECT job_description FROM job_postings
		WHERE `+where+` AND job_description IS NOT NULL ORDER BY id`, args...)
	if err != nil {
		return nil, queryErr(err, "failed to load job descriptions")
	}
	defer rows.Close()

	descriptions := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, queryErr(err, "failed to scan job description")
		}
		descriptions = append(descriptions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr(err, "failed to iterate job descriptions")
	}
	return descriptions, nil
}

// DailyCounts returns active postings per posted day (YYYY-MM-DD, UTC)
// since the cutoff, oldest day first
func (s *Store) DailyCounts(ctx context.Context, since time.Time) ([]LabelCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT substr(posted_date, 1, 10) AS day, COUNT(*)
		FROM job_postings
		WHERE is_active = 1 AND posted_date >= ?
		GROUP BY day ORDER BY day`, formatTime(since))
	if err != nil {
		return nil, queryErr(err, "failed to count job postings per day")
	}
	defer rows.Close()

	days := make([]LabelCount, 0)
	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, queryErr(err, "failed to scan daily count")
		}
		days = append(days, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr(err, "failed to iterate daily counts")
	}
	return days, nil
}
