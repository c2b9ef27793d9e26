package storage

import (
	"context"
	"time"
)

// Scope is a set of active postings that aggregates can run over.
// Filter and Segment are the two scopes.
type Scope interface {
	where(now time.Time) (string, []interface{})
}

var (
	_ Scope = Filter{}
	_ Scope = Segment{}
)

// Segment is the market dashboard scope. Each list keeps postings matching
// any of its entries; the lists and bounds combine with AND.
type Segment struct {
	Titles    []string `json:"titles,omitempty"`
	Locations []string `json:"locations,omitempty"`
	Companies []string `json:"companies,omitempty"`
	Platforms []string `json:"platforms,omitempty"`
	// Days keeps postings first stored within the last Days days; 0 = all
	Days int `json:"days,omitempty"`
	// MinSalary and MaxSalary bound salary_min inclusively
	MinSalary *float64 `json:"min_salary,omitempty"`
	MaxSalary *float64 `json:"max_salary,omitempty"`
}

func (sg Segment) where(now time.Time) (string, []interface{}) {
	qb := &queryBuilder{}
	qb.addClause("is_active = 1")
	qb.buildAnyOfFilter("title", sg.Titles)
	qb.buildAnyOfFilter("location", sg.Locations)
	qb.buildAnyOfFilter("company_name", sg.Companies)
	qb.buildAnyOfFilter("source_platform", sg.Platforms)
	if sg.Days > 0 {
		qb.addClause("created_at >= ?", formatTime(now.AddDate(0, 0, -sg.Days)))
	}
	if sg.MinSalary != nil {
		qb.addClause("salary_min >= ?", *sg.MinSalary)
	}
	if sg.MaxSalary != nil {
		qb.addClause("salary_min <= ?", *sg.MaxSalary)
	}
	return qb.build(), qb.args
}

// CountIn counts the postings in sc
func (s *Store) CountIn(ctx context.Context, sc Scope) (int, error) {
	where, args := sc.where(s.clock())
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_postings WHERE `+where, args...).Scan(&n); err != nil {
		return 0, queryErr(err, "failed to count job postings")
	}
	return n, nil
}

// CountByIn is CountBy over the postings in sc
func (s *Store) CountByIn(ctx context.Context, field GroupField, sc Scope, limit int) ([]LabelCount, error) {
	where, args := sc.where(s.clock())
	return s.countBy(ctx, field, where, args, limit)
}
