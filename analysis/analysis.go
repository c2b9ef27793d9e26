// Package analysis turns stored postings into summaries, salary statistics,
// skill demand and posting trends.
package analysis

import (
	"context"
	"time"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/storage"
)

// ErrNoData is returned when there are no postings to analyze
var ErrNoData = errors.WithHint(
	errors.New("no job data available"),
	"run 'recruitiq scrape all' or 'recruitiq import <file>' first")

// RecentWindowDays is the window behind Summary.Recent
const RecentWindowDays = 7

// Reader is the read side of the store used by the analyzer
type Reader interface {
	CountActive(ctx context.Context) (int, error)
	CountSince(ctx context.Context, cutoff time.Time) (int, error)
	CountBy(ctx context.Context, field storage.GroupField, limit int) ([]storage.LabelCount, error)
	CountBySince(ctx context.Context, field storage.GroupField, since time.Time, limit int) ([]storage.LabelCount, error)
	SalarySample(ctx context.Context) (storage.SalarySample, error)
	Descriptions(ctx context.Context) ([]string, error)
	DailyCounts(ctx context.Context, since time.Time) ([]storage.LabelCount, error)

	CountIn(ctx context.Context, sc storage.Scope) (int, error)
	CountByIn(ctx context.Context, field storage.GroupField, sc storage.Scope, limit int) ([]storage.LabelCount, error)
	SalarySampleIn(ctx context.Context, sc storage.Scope) (storage.SalarySample, error)
	DescriptionsIn(ctx context.Context, sc storage.Scope) ([]string, error)
	SalaryBy(ctx context.Context, field storage.GroupField, titles []string, minCount int) ([]storage.GroupSalary, error)
}

var _ Reader = (*storage.Store)(nil)

// Options tunes an Analyzer
type Options struct {
	TopN   int      // list length for top titles, locations and companies
	Skills []string // skill vocabulary; DefaultSkills when empty
	Now    func() time.Time
}

// Analyzer computes aggregate views over a Reader
type Analyzer struct {
	reader Reader
	topN   int
	skills []string
	now    func() time.Time
}

// New creates an analyzer
func New(reader Reader, opts Options) *Analyzer {
	a := &Analyzer{
		reader: reader,
		topN:   opts.TopN,
		skills: opts.Skills,
		now:    opts.Now,
	}
	if a.topN <= 0 {
		a.topN = storage.TopNLimit
	}
	if len(a.skills) == 0 {
		a.skills = DefaultSkills
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// Summary is the overview shown by `recruitiq analyze` and the executive report
type Summary struct {
	Total           int                  `json:"total_jobs"`
	Recent          int                  `json:"recent_jobs_7_days"`
	TopTitles       []storage.LabelCount `json:"top_titles"`
	TopLocations    []storage.LabelCount `json:"top_locations"`
	TopCompanies    []storage.LabelCount `json:"top_companies"`
	Platforms       []storage.LabelCount `json:"platform_distribution"`
	EmploymentTypes []storage.LabelCount `json:"employment_types"`
	Salary          *SalaryStats         `json:"salary_stats,omitempty"` // nil when no salary data
	GeneratedAt     time.Time            `json:"generated_at"`
}

// Summary gathers totals, top lists, distributions and salary statistics
func (a *Analyzer) Summary(ctx context.Context) (*Summary, error) {
	now := a.now().UTC()

	total, err := a.reader.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, ErrNoData
	}

	s := &Summary{Total: total, GeneratedAt: now}

	if s.Recent, err = a.reader.CountSince(ctx, now.AddDate(0, 0, -RecentWindowDays)); err != nil {
		return nil, err
	}
	groups := []struct {
		field storage.GroupField
		limit int
		dest  *[]storage.LabelCount
	}{
		{storage.GroupTitle, a.topN, &s.TopTitles},
		{storage.GroupLocation, a.topN, &s.TopLocations},
		{storage.GroupCompany, a.topN, &s.TopCompanies},
		{storage.GroupPlatform, 0, &s.Platforms},
		{storage.GroupEmploymentType, 0, &s.EmploymentTypes},
	}
	for _, g := range groups {
		counts, err := a.reader.CountBy(ctx, g.field, g.limit)
		if err != nil {
			return nil, err
		}
		*g.dest = counts
	}

	stats, err := a.Salary(ctx)
	switch {
	case err == nil:
		s.Salary = stats
	case !errors.Is(err, ErrNoData):
		return nil, err
	}
	return s, nil
}

// Salary computes statistics over positive salary_min values
func (a *Analyzer) Salary(ctx context.Context) (*SalaryStats, error) {
	sample, err := a.reader.SalarySample(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := ComputeSalaryStats(sample.Values)
	if err != nil {
		return nil, err
	}
	stats.WithSalary = sample.WithSalary
	stats.Ranged = sample.Ranged
	return &stats, nil
}

// SkillReport is the result of skill demand analysis
type SkillReport struct {
	TopSkills      []SkillCount `json:"top_skills"`
	JobsAnalyzed   int          `json:"total_jobs_analyzed"`
	SkillsSearched int          `json:"skills_searched"`
}

// Skills counts skill mentions across active job descriptions
func (a *Analyzer) Skills(ctx context.Context) (*SkillReport, error) {
	descriptions, err := a.reader.Descriptions(ctx)
	if err != nil {
		return nil, err
	}
	if len(descriptions) == 0 {
		return nil, errors.WithHint(ErrNoData, "no stored posting has a job description")
	}
	return &SkillReport{
		TopSkills:      TopSkills(CountSkills(descriptions, a.skills), TopSkillsLimit),
		JobsAnalyzed:   len(descriptions),
		SkillsSearched: len(a.skills),
	}, nil
}

// Trends describes posting volume over a trailing window
type Trends struct {
	PeriodDays int                  `json:"period_days"`
	Daily      []storage.LabelCount `json:"daily_postings"`
	Platforms  []storage.LabelCount `json:"platform_trends"`
	Total      int                  `json:"total_jobs_period"`
}

// Trends returns per-day and per-platform counts of postings dated within days
func (a *Analyzer) Trends(ctx context.Context, days int) (*Trends, error) {
	if days <= 0 {
		return nil, errors.NewInvalidRequestError("trend window must be positive, got %d days", days)
	}
	cutoff := a.now().UTC().AddDate(0, 0, -days)

	daily, err := a.reader.DailyCounts(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	platforms, err := a.reader.CountBySince(ctx, storage.GroupPlatform, cutoff, 0)
	if err != nil {
		return nil, err
	}

	t := &Trends{PeriodDays: days, Daily: daily, Platforms: platforms}
	for _, d := range daily {
		t.Total += d.Count
	}
	return t, nil
}
