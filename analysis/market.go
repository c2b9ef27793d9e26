package analysis

import (
	"context"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/storage"
)

// MarketTopSkills is the skill list length of a market analysis
const MarketTopSkills = 10

// Market is the analysis of one market segment
type Market struct {
	Segment         storage.Segment      `json:"filters"`
	Total           int                  `json:"total_jobs"`
	Salary          *SalaryStats         `json:"salary_analysis,omitempty"` // nil when no posting has a salary
	TopLocations    []storage.LabelCount `json:"geographic_distribution"`
	TopCompanies    []storage.LabelCount `json:"company_insights"`
	EmploymentTypes []storage.LabelCount `json:"employment_trends"`
	Platforms       []storage.LabelCount `json:"platform_performance"`
	TopSkills       []SkillCount         `json:"skills_demand"`
	JobsAnalyzed    int                  `json:"descriptions_analyzed"`
	SkillsSearched  int                  `json:"skills_searched"`
}

// Market analyzes the postings in seg: volume, salaries with their
// distribution, where and who is hiring, and skill demand
func (a *Analyzer) Market(ctx context.Context, seg storage.Segment) (*Market, error) {
	if seg.MinSalary != nil && seg.MaxSalary != nil && *seg.MinSalary > *seg.MaxSalary {
		return nil, errors.NewInvalidRequestError("minimum salary %.0f is above maximum %.0f", *seg.MinSalary, *seg.MaxSalary)
	}
	if seg.Days < 0 {
		return nil, errors.NewInvalidRequestError("day window cannot be negative, got %d", seg.Days)
	}

	total, err := a.reader.CountIn(ctx, seg)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, errors.WithDetail(ErrNoData, "no jobs match the current filters")
	}
	m := &Market{Segment: seg, Total: total}

	groups := []struct {
		field storage.GroupField
		limit int
		dest  *[]storage.LabelCount
	}{
		{storage.GroupCity, a.topN, &m.TopLocations},
		{storage.GroupCompany, a.topN, &m.TopCompanies},
		{storage.GroupEmploymentType, 0, &m.EmploymentTypes},
		{storage.GroupPlatform, 0, &m.Platforms},
	}
	for _, g := range groups {
		if *g.dest, err = a.reader.CountByIn(ctx, g.field, seg, g.limit); err != nil {
			return nil, err
		}
	}

	sample, err := a.reader.SalarySampleIn(ctx, seg)
	if err != nil {
		return nil, err
	}
	if stats, err := ComputeSalaryStats(sample.Values); err == nil {
		stats.WithSalary = sample.WithSalary
		stats.Ranged = sample.Ranged
		m.Salary = &stats
	}

	descriptions, err := a.reader.DescriptionsIn(ctx, seg)
	if err != nil {
		return nil, err
	}
	m.JobsAnalyzed = len(descriptions)
	m.SkillsSearched = len(a.skills)
	m.TopSkills = TopSkills(CountSkills(descriptions, a.skills), MarketTopSkills)
	return m, nil
}
