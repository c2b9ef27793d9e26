package storage

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/teranos/recruitiq/errors"
)

// GroupSalary summarizes salary_min over one group of postings
type GroupSalary struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// CompanyActivity summarizes one company's active postings
type CompanyActivity struct {
	Company   string   `json:"company"`
	Jobs      int      `json:"total_jobs"`
	AvgSalary *float64 `json:"avg_salary,omitempty"` // nil when no posting has a salary
	Locations int      `json:"locations"`
	Platforms []string `json:"platforms"`
}

// buildAnyOfFilter matches any of values as a substring of column
func (qb *queryBuilder) buildAnyOfFilter(column string, values []string) {
	clauses := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		clause, pattern := substringMatch(column, v)
		clauses = append(clauses, clause)
		qb.args = append(qb.args, pattern)
	}
	if len(clauses) > 0 {
		qb.whereClauses = append(qb.whereClauses, "("+strings.Join(clauses, " OR ")+")")
	}
}

// SalaryBy groups active postings with a salary_min by field and returns
// groups of at least minCount postings, highest average first. titles, when
// given, keeps postings whose title contains any of them.
func (s *Store) SalaryBy(ctx context.Context, field GroupField, titles []string, minCount int) ([]GroupSalary, error) {
	if !field.Valid() {
		return nil, errors.NewInvalidRequestError("cannot group salaries by %q", string(field))
	}
	if minCount < 1 {
		minCount = 1
	}
	expr := field.expr()
	qb := &queryBuilder{}
	qb.addClause("is_active = 1")
	qb.addClause("salary_min IS NOT NULL")
	qb.addClause(expr + " IS NOT NULL")
	qb.addClause(expr + " <> ''")
	qb.buildAnyOfFilter("title", titles)

	query := `SELECT ` + expr + ` AS label, COUNT(*) AS n, AVG(salary_min), MIN(salary_min), MAX(salary_min)
		FROM job_postings WHERE ` + qb.build() + `
		GROUP BY label HAVING COUNT(*) >= ? ORDER BY AVG(salary_min) DESC, label ASC`
	args := append(qb.args, minCount)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryErr(err, "failed to group salaries by %s", field)
	}
	defer rows.Close()

	groups := make([]GroupSalary, 0)
	for rows.Next() {
		var g GroupSalary
		if err := rows.Scan(&g.Label, &g.Count, &g.Average, &g.Min, &g.Max); err != nil {
			return nil, queryErr(err, "failed to scan salary group")
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr(err, "failed to iterate salary groups")
	}
	return groups, nil
}

// CompanyActivities summarizes hiring per company, busiest first.
// companies, when given, keeps company names containing any of them.
func (s *Store) CompanyActivities(ctx context.Context, companies []string, limit int) ([]CompanyActivity, error) {
	if limit <= 0 {
		limit = -1
	}
	qb := &queryBuilder{}
	qb.addClause("is_active = 1")
	qb.buildAnyOfFilter("company_name", companies)

	query := `SELECT company_name, COUNT(*) AS n,
			AVG(CASE WHEN salary_min > 0 THEN salary_min END),
			COUNT(DISTINCT location),
			GROUP_CONCAT(DISTINCT source_platform)
		FROM job_postings WHERE ` + qb.build() + `
		GROUP BY company_name ORDER BY n DESC, company_name ASC LIMIT ?`
	args := append(qb.args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryErr(err, "failed to summarize company activity")
	}
	defer rows.Close()

	out := make([]CompanyActivity, 0)
	for rows.Next() {
		var (
			a         CompanyActivity
			avg       sql.NullFloat64
			platforms sql.NullString
		)
		if err := rows.Scan(&a.Company, &a.Jobs, &avg, &a.Locations, &platforms); err != nil {
			return nil, queryErr(err, "failed to scan company activity")
		}
		if avg.Valid {
			v := avg.Float64
			a.AvgSalary = &v
		}
		a.Platforms = make([]string, 0)
		if platforms.Valid && platforms.String != "" {
			a.Platforms = strings.Split(platforms.String, ",")
			sort.Strings(a.Platforms)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr(err, "failed to iterate company activity")
	}
	return out, nil
}
