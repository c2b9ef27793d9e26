package report

import (
	"context"

	"github.com/teranos/recruitiq/analysis"
	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/storage"
)

// ExecutiveData feeds the executive summary
type ExecutiveData struct {
	PeriodDays int
	Summary    *analysis.Summary
	Period     int     // postings dated within the period
	GrowthRate float64 // period postings relative to older ones, in percent
}

func (g *Generator) executive(ctx context.Context, opts Options) (*ExecutiveData, error) {
	days := opts.PeriodDays
	if days <= 0 {
		days = DefaultPeriodDays
	}
	summary, err := g.analyzer.Summary(ctx)
	if err != nil {
		return nil, err
	}
	period, err := g.source.CountSince(ctx, g.now().UTC().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	d := &ExecutiveData{PeriodDays: days, Summary: summary, Period: period}
	if older := summary.Total - period; older > 0 {
		d.GrowthRate = float64(period) * 100 / float64(older)
	}
	return d, nil
}

// SalaryData feeds the salary report
type SalaryData struct {
	Titles     []string
	Overall    *analysis.SalaryStats
	ByTitle    []storage.GroupSalary
	ByCompany  []storage.GroupSalary
	ByLocation []storage.GroupSalary
}

func (g *Generator) salary(ctx context.Context, opts Options) (*SalaryData, error) {
	overall, err := g.analyzer.Salary(ctx)
	if err != nil {
		return nil, err
	}
	d := &SalaryData{Titles: opts.Titles, Overall: overall}
	for _, part := range []struct {
		field storage.GroupField
		out   *[]storage.GroupSalary
	}{
		{storage.GroupTitle, &d.ByTitle},
		{storage.GroupCompany, &d.ByCompany},
		{storage.GroupCity, &d.ByLocation},
	} {
		groups, err := g.source.SalaryBy(ctx, part.field, opts.Titles, MinGroupSize)
		if err != nil {
			return nil, err
		}
		*part.out = groups
	}
	return d, nil
}

// SkillsData feeds the skills report
type SkillsData struct {
	JobsAnalyzed int
	Categories   []analysis.CategoryCounts
	TopOverall   []analysis.CategorizedSkill
}

func (g *Generator) skills(ctx context.Context) (*SkillsData, error) {
	descriptions, err := g.source.Descriptions(ctx)
	if err != nil {
		return nil, err
	}
	if len(descriptions) == 0 {
		return nil, errors.WithDetail(analysis.ErrNoData, "no postings have a description")
	}
	categories, top := analysis.CountSkillCategories(descriptions, analysis.DefaultCategories, TopSkillsOverall)
	return &SkillsData{JobsAnalyzed: len(descriptions), Categories: categories, TopOverall: top}, nil
}

// CompaniesData feeds the company report
type CompaniesData struct {
	Filter    []string
	Total     int
	Companies []storage.CompanyActivity
}

func (g *Generator) companies(ctx context.Context, opts Options) (*CompaniesData, error) {
	activity, err := g.source.CompanyActivities(ctx, opts.Companies, 0)
	if err != nil {
		return nil, err
	}
	if len(activity) == 0 {
		return nil, analysis.ErrNoData
	}
	d := &CompaniesData{Filter: opts.Companies, Total: len(activity), Companies: activity}
	if len(d.Companies) > TopCompaniesLimit {
		d.Companies = d.Companies[:TopCompaniesLimit]
	}
	return d, nil
}

// MarketData feeds the market intelligence report
type MarketData struct {
	FocusRole       string
	Total           int
	Locations       []storage.LabelCount
	EmploymentTypes []storage.LabelCount
	Platforms       []storage.LabelCount
	Daily           []storage.LabelCount
	HistoryDays     int
}

func (g *Generator) market(ctx context.Context, opts Options) (*MarketData, error) {
	f := storage.Filter{Title: opts.FocusRole}

	platforms, err := g.source.CountByFilter(ctx, storage.GroupPlatform, f, 0)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, p := range platforms {
		total += p.Count
	}
	if total == 0 {
		return nil, analysis.ErrNoData
	}

	d := &MarketData{FocusRole: opts.FocusRole, Total: total, Platforms: platforms, HistoryDays: marketHistoryDays}
	if d.Locations, err = g.source.CountByFilter(ctx, storage.GroupCity, f, TopLocationsLimit); err != nil {
		return nil, err
	}
	if d.EmploymentTypes, err = g.source.CountByFilter(ctx, storage.GroupEmploymentType, f, 0); err != nil {
		return nil, err
	}
	if d.Daily, err = g.source.DailyCounts(ctx, g.now().UTC().AddDate(0, 0, -marketHistoryDays)); err != nil {
		return nil, err
	}
	return d, nil
}
