package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/recruitiq/analysis"
	"github.com/teranos/recruitiq/db"
	"github.com/teranos/recruitiq/storage"
	"github.com/teranos/recruitiq/sym"
)

// section writes a section header followed by a chart of counts
func section(w io.Writer, title string, counts []storage.LabelCount) error {
	fmt.Fprint(w, pterm.DefaultSection.Sprint(title))
	chart, err := BarChart(counts)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, chart)
	return nil
}

// WriteSummary prints the market summary
func WriteSummary(w io.Writer, s *analysis.Summary) error {
	fmt.Fprintln(w, pterm.DefaultBox.WithTitle(sym.Analyze+" Job Market Summary").Sprint(
		fmt.Sprintf("Total active jobs: %s\nPosted in the last %d days: %s",
			pterm.Cyan(s.Total), analysis.RecentWindowDays, pterm.Cyan(s.Recent))))

	for _, part := range []struct {
		title  string
		counts []storage.LabelCount
	}{
		{"Top job titles", s.TopTitles},
		{"Top locations", s.TopLocations},
		{"Top companies", s.TopCompanies},
		{"Jobs by platform", s.Platforms},
		{"Employment types", s.EmploymentTypes},
	} {
		if err := section(w, part.title, part.counts); err != nil {
			return err
		}
	}

	fmt.Fprint(w, pterm.DefaultSection.Sprint(sym.Salary+" Salary"))
	if s.Salary == nil {
		fmt.Fprintln(w, pterm.Gray("No salary data available"))
		return nil
	}
	return writeSalaryTable(w, s.Salary)
}

// WriteSalary prints salary statistics and their distribution
func WriteSalary(w io.Writer, stats *analysis.SalaryStats) error {
	fmt.Fprint(w, pterm.DefaultSection.Sprint(sym.Salary+" Salary statistics"))
	if err := writeSalaryTable(w, stats); err != nil {
		return err
	}
	return writeDistribution(w, stats)
}

// writeDistribution prints the salary buckets with their share of the sample
func writeDistribution(w io.Writer, stats *analysis.SalaryStats) error {
	if len(stats.Distribution) == 0 {
		return nil
	}
	table, err := CountTable("Salary range", stats.Distribution, stats.Count)
	if err != nil {
		return err
	}
	fmt.Fprint(w, pterm.DefaultSection.WithLevel(2).Sprint("Salary distribution"))
	fmt.Fprintln(w, table)
	return nil
}

// WriteBenchmark prints a salary benchmark for one job title
func WriteBenchmark(w io.Writer, b *analysis.Benchmark) error {
	fmt.Fprint(w, pterm.DefaultSection.Sprint(sym.Salary+" Salary benchmarking: "+b.Title))

	data := pterm.TableData{{"Percentile", "Salary"}}
	for _, p := range b.Percentiles {
		data = append(data, []string{p.Label, FormatMoney(p.Value, "USD")})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)

	if len(b.CompanyAverages) > 0 {
		data := pterm.TableData{{"Company", "Average salary", "Postings"}}
		for _, c := range b.CompanyAverages {
			data = append(data, []string{c.Label, FormatMoney(c.Average, "USD"), pterm.Sprint(c.Count)})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprint(w, pterm.DefaultSection.WithLevel(2).Sprint("Top paying companies"))
		fmt.Fprintln(w, table)
	}

	if err := writeDistribution(w, &b.Stats); err != nil {
		return err
	}
	fmt.Fprintf(w, "Sample size: %d jobs, average %s\n", b.Stats.Count, FormatMoney(b.Stats.Mean, "USD"))
	return nil
}

// WriteMarket prints the analysis of a market segment
func WriteMarket(w io.Writer, m *analysis.Market) error {
	fmt.Fprintln(w, pterm.DefaultBox.WithTitle(sym.Analyze+" Market analysis").Sprint(
		fmt.Sprintf("Jobs matching filters: %s\nFilters: %s", pterm.Cyan(m.Total), describeSegment(m.Segment))))

	for _, part := range []struct {
		title  string
		counts []storage.LabelCount
	}{
		{"Top locations", m.TopLocations},
		{"Top companies", m.TopCompanies},
		{"Employment types", m.EmploymentTypes},
		{"Jobs by platform", m.Platforms},
	} {
		if err := section(w, part.title, part.counts); err != nil {
			return err
		}
	}

	fmt.Fprint(w, pterm.DefaultSection.Sprint(sym.Salary+" Salary"))
	if m.Salary == nil {
		fmt.Fprintln(w, pterm.Gray("No salary data available"))
	} else {
		if err := writeSalaryTable(w, m.Salary); err != nil {
			return err
		}
		if err := writeDistribution(w, m.Salary); err != nil {
			return err
		}
	}

	if len(m.TopSkills) == 0 {
		return nil
	}
	return WriteSkills(w, &analysis.SkillReport{TopSkills: m.TopSkills, JobsAnalyzed: m.JobsAnalyzed, SkillsSearched: m.SkillsSearched})
}

func describeSegment(sg storage.Segment) string {
	parts := make([]string, 0, 6)
	lists := []struct {
		name   string
		values []string
	}{
		{"titles", sg.Titles},
		{"locations", sg.Locations},
		{"companies", sg.Companies},
		{"platforms", sg.Platforms},
	}
	for _, l := range lists {
		if len(l.values) > 0 {
			parts = append(parts, l.name+" "+strings.Join(l.values, " | "))
		}
	}
	if sg.Days > 0 {
		parts = append(parts, fmt.Sprintf("last %d days", sg.Days))
	}
	if sg.MinSalary != nil || sg.MaxSalary != nil {
		lo, hi := "any", "any"
		if sg.MinSalary != nil {
			lo = FormatMoney(*sg.MinSalary, "USD")
		}
		if sg.MaxSalary != nil {
			hi = FormatMoney(*sg.MaxSalary, "USD")
		}
		parts = append(parts, "salary "+lo+" to "+hi)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "; ")
}

func writeSalaryTable(w io.Writer, stats *analysis.SalaryStats) error {
	table, err := pterm.DefaultTable.WithData(pterm.TableData{
		{"Postings with salary", pterm.Sprint(stats.WithSalary)},
		{"Salary figures used", pterm.Sprint(stats.Count)},
		{"Postings with a range", pterm.Sprint(stats.Ranged)},
		{"Mean", FormatMoney(stats.Mean, "USD")},
		{"Median", FormatMoney(stats.Median, "USD")},
		{"Minimum", FormatMoney(stats.Min, "USD")},
		{"Maximum", FormatMoney(stats.Max, "USD")},
	}).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)
	return nil
}

// WriteSkills prints skill demand as a table with percentages
func WriteSkills(w io.Writer, report *analysis.SkillReport) error {
	fmt.Fprint(w, pterm.DefaultSection.Sprint(sym.Skill+" Skill demand"))
	fmt.Fprintf(w, "%d job descriptions analyzed for %d skills\n\n", report.JobsAnalyzed, report.SkillsSearched)
	if len(report.TopSkills) == 0 {
		fmt.Fprintln(w, pterm.Gray("No skills mentioned"))
		return nil
	}

	data := pterm.TableData{{"Skill", "Jobs", "Share"}}
	for _, s := range report.TopSkills {
		data = append(data, []string{s.Skill, pterm.Sprint(s.Count), FormatPercent(s.Percent)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)
	return nil
}

// WriteTrends prints per-day and per-platform counts for the trend window
func WriteTrends(w io.Writer, t *analysis.Trends) error {
	fmt.Fprintln(w, pterm.DefaultBox.WithTitle(sym.Analyze+" Posting trends").Sprint(
		fmt.Sprintf("Jobs posted in the last %d days: %s", t.PeriodDays, pterm.Cyan(t.Total))))
	if err := section(w, "Daily postings", t.Daily); err != nil {
		return err
	}
	return section(w, "Platforms", t.Platforms)
}

// Status is the database overview printed by the status command
type Status struct {
	DatabasePath string               `json:"database_path"`
	SchemaVer    string               `json:"schema_version"`
	Total        int                  `json:"total_active"`
	Recent       int                  `json:"recent_7_days"`
	Platforms    []storage.LabelCount `json:"platforms"`
	LastRuns     []storage.Run        `json:"last_runs"`
	Storage      *db.FileStats        `json:"storage,omitempty"`
}

// WriteStatus prints the database overview
func WriteStatus(w io.Writer, s *Status) error {
	body := fmt.Sprintf("Database: %s (schema %s)\nActive jobs: %s\nPosted in the last %d days: %s",
		s.DatabasePath, s.SchemaVer, pterm.Cyan(s.Total), analysis.RecentWindowDays, pterm.Cyan(s.Recent))
	if s.Storage != nil {
		body += fmt.Sprintf("\nSize: %s, %s free on volume (%.0f%% used)",
			FormatBytes(uint64(s.Storage.SizeBytes)), FormatBytes(s.Storage.VolumeFreeBytes), s.Storage.VolumeUsedPct)
	}
	fmt.Fprintln(w, pterm.DefaultBox.WithTitle(sym.Status+" RecruitIQ status").Sprint(body))

	if len(s.Platforms) > 0 {
		table, err := CountTable("Platform", s.Platforms, s.Total)
		if err != nil {
			return err
		}
		fmt.Fprint(w, pterm.DefaultSection.Sprint("Jobs by platform"))
		fmt.Fprintln(w, table)
	}

	if len(s.LastRuns) > 0 {
		data := pterm.TableData{{"Finished", "Source", "Saved", "Invalid", "Failed", "Error"}}
		for _, r := range s.LastRuns {
			data = append(data, []string{
				r.FinishedAt.Format("2006-01-02 15:04"),
				r.Source,
				pterm.Sprint(r.Saved),
				pterm.Sprint(r.Invalid),
				pterm.Sprint(r.Failed),
				r.Error,
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprint(w, pterm.DefaultSection.Sprint(sym.Scrape+" Recent runs"))
		fmt.Fprintln(w, table)
	}
	return nil
}

// FormatBytes renders a byte count with a binary unit suffix
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
