package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/recruitiq/analysis"
	"github.com/teranos/recruitiq/display"
	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/storage"
	"github.com/teranos/recruitiq/sym"
)

// AnalyzeCmd prints market statistics
var AnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: sym.Analyze + " Market statistics, skills, trends and salaries",
	Long: sym.Analyze + ` analyze - Market statistics over active postings

Without a subcommand prints the market summary: totals, top titles,
locations and companies, platform and employment-type distributions, and
salary statistics.

Examples:
  recruitiq analyze
  recruitiq analyze skills
  recruitiq analyze trends --days 14
  recruitiq analyze salary --json
  recruitiq analyze salary --title "software engineer"
  recruitiq analyze market --title "data scientist" --location "New York" --days 30`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAnalyzer(cmd, func(a *analysis.Analyzer) error {
			summary, err := a.Summary(commandContext(cmd))
			if err != nil {
				return err
			}
			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(summary)
			}
			return display.WriteSummary(os.Stdout, summary)
		})
	},
}

var analyzeSkillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Most demanded skills across job descriptions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAnalyzer(cmd, func(a *analysis.Analyzer) error {
			report, err := a.Skills(commandContext(cmd))
			if err != nil {
				return err
			}
			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(report)
			}
			return display.WriteSkills(os.Stdout, report)
		})
	},
}

var trendDays int

var analyzeTrendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Posting volume per day and platform",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAnalyzer(cmd, func(a *analysis.Analyzer) error {
			trends, err := a.Trends(commandContext(cmd), trendDays)
			if err != nil {
				return err
			}
			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(trends)
			}
			return display.WriteTrends(os.Stdout, trends)
		})
	},
}

var salaryTitle string

var analyzeSalaryCmd = &cobra.Command{
	Use:   "salary",
	Short: "Salary statistics, or a benchmark for one job title",
	Long: `Salary statistics over every active posting with a salary, including the
distribution across fixed ranges.

With --title, benchmarks the postings whose title contains the text:
percentiles, the best paying companies (at least two postings each) and
the distribution.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAnalyzer(cmd, func(a *analysis.Analyzer) error {
			if cmd.Flags().Changed("title") {
				b, err := a.Benchmark(commandContext(cmd), salaryTitle)
				if err != nil {
					return err
				}
				if display.ShouldOutputJSON(cmd) {
					return display.OutputJSON(b)
				}
				return display.WriteBenchmark(os.Stdout, b)
			}

			stats, err := a.Salary(commandContext(cmd))
			if err != nil {
				return err
			}
			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(stats)
			}
			return display.WriteSalary(os.Stdout, stats)
		})
	},
}

// marketFlags are the segment filters of `analyze market`
type marketFlags struct {
	titles, locations, companies, platforms []string
	days                                    int
	minSalary, maxSalary                    float64
}

var marketOpts marketFlags

var analyzeMarketCmd = &cobra.Command{
	Use:   "market",
	Short: "Market analysis for a filtered segment",
	Long: `Analyze the postings matching a set of filters: volume, salaries and their
distribution, top locations and companies, employment types, platforms and
skill demand.

Each list flag takes several values and matches any of them (substring,
case-insensitive). Different flags must all match. --days counts from when
a posting was first stored; the salary bounds apply to the minimum salary.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seg, err := marketOpts.segment(cmd)
		if err != nil {
			return err
		}
		return withAnalyzer(cmd, func(a *analysis.Analyzer) error {
			m, err := a.Market(commandContext(cmd), seg)
			if err != nil {
				return err
			}
			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(m)
			}
			return display.WriteMarket(os.Stdout, m)
		})
	},
}

// segment converts the flags into a storage segment; unset salary bounds stay nil
func (o marketFlags) segment(cmd *cobra.Command) (storage.Segment, error) {
	seg := storage.Segment{
		Titles:    o.titles,
		Locations: o.locations,
		Companies: o.companies,
		Platforms: o.platforms,
		Days:      o.days,
	}
	if o.days < 0 {
		return seg, errors.NewInvalidRequestError("--days must be positive, got %d", o.days)
	}
	if cmd.Flags().Changed("min-salary") {
		v := o.minSalary
		seg.MinSalary = &v
	}
	if cmd.Flags().Changed("max-salary") {
		v := o.maxSalary
		seg.MaxSalary = &v
	}
	if seg.MinSalary != nil && seg.MaxSalary != nil && *seg.MinSalary > *seg.MaxSalary {
		return seg, errors.NewInvalidRequestError("--min-salary %.0f exceeds --max-salary %.0f", *seg.MinSalary, *seg.MaxSalary)
	}
	return seg, nil
}

func init() {
	analyzeTrendsCmd.Flags().IntVarP(&trendDays, "days", "d", 30, "Trailing window in days")
	analyzeSalaryCmd.Flags().StringVarP(&salaryTitle, "title", "t", "", "Benchmark postings whose title contains this text")

	f := analyzeMarketCmd.Flags()
	f.StringSliceVarP(&marketOpts.titles, "title", "t", nil, "Job titles to include (repeatable or comma-separated)")
	f.StringSliceVarP(&marketOpts.locations, "location", "l", nil, "Locations to include")
	f.StringSliceVarP(&marketOpts.companies, "company", "c", nil, "Companies to include")
	f.StringSliceVarP(&marketOpts.platforms, "platform", "p", nil, "Platforms to include")
	f.IntVarP(&marketOpts.days, "days", "d", 0, "Only postings first stored within N days (0 = all)")
	f.Float64Var(&marketOpts.minSalary, "min-salary", 0, "Minimum salary_min")
	f.Float64Var(&marketOpts.maxSalary, "max-salary", 0, "Maximum salary_min")

	AnalyzeCmd.AddCommand(analyzeSkillsCmd)
	AnalyzeCmd.AddCommand(analyzeTrendsCmd)
	AnalyzeCmd.AddCommand(analyzeSalaryCmd)
	AnalyzeCmd.AddCommand(analyzeMarketCmd)
}

// withAnalyzer opens the database and runs fn with an analyzer configured from am
func withAnalyzer(cmd *cobra.Command, fn func(a *analysis.Analyzer) error) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(newAnalyzer(s))
}

func newAnalyzer(s *session) *analysis.Analyzer {
	return analysis.New(s.store, analysis.Options{
		TopN:   s.cfg.GetTopN(),
		Skills: s.cfg.Analysis.Skills,
	})
}
