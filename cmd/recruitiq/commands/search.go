package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/recruitiq/display"
	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/storage"
	"github.com/teranos/recruitiq/sym"
)

// SearchCmd filters stored postings
var SearchCmd = &cobra.Command{
	Use:   "search",
	Short: sym.Search + " Filter and list stored postings",
	Long: sym.Search + ` search - Filter and list stored postings

Every filter narrows the result; text filters are case-insensitive substring
matches. Results are newest first.

Examples:
  recruitiq search --title "backend engineer" --location remote
  recruitiq search --keywords kubernetes --min-salary 120000 --days 14
  recruitiq search --company acme --detailed
  recruitiq search --title engineer --export engineers.csv
  recruitiq search --suggest`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

type searchFlags struct {
	title, location, company, platform, employmentType, keywords string
	minSalary, maxSalary                                         float64
	days, limit                                                  int
	detailed, suggest                                            bool
	export                                                       string
}

var searchOpts searchFlags

func init() {
	f := SearchCmd.Flags()
	f.StringVarP(&searchOpts.title, "title", "t", "", "Job title contains")
	f.StringVarP(&searchOpts.location, "location", "l", "", "Location contains")
	f.StringVarP(&searchOpts.company, "company", "c", "", "Company name contains")
	f.StringVarP(&searchOpts.platform, "platform", "p", "", "Source platform contains")
	f.StringVar(&searchOpts.employmentType, "employment-type", "", "Employment type contains")
	f.StringVarP(&searchOpts.keywords, "keywords", "k", "", "Description or title contains")
	f.Float64Var(&searchOpts.minSalary, "min-salary", 0, "Minimum salary_min")
	f.Float64Var(&searchOpts.maxSalary, "max-salary", 0, "Maximum salary_max")
	f.IntVarP(&searchOpts.days, "days", "d", 0, "Only postings from the last N days")
	f.IntVarP(&searchOpts.limit, "limit", "n", 0, "Maximum results (default search.default_limit)")
	f.BoolVar(&searchOpts.detailed, "detailed", false, "Show each posting with its description")
	f.StringVar(&searchOpts.export, "export", "", "Write results to a CSV file")
	f.BoolVar(&searchOpts.suggest, "suggest", false, "List common filter values instead of searching")
}

// filter converts the flags into a storage filter; unset salary bounds stay nil
func (o searchFlags) filter(cmd *cobra.Command, defaultLimit int) (storage.Filter, error) {
	f := storage.Filter{
		Title:          o.title,
		Location:       o.location,
		Company:        o.company,
		Platform:       o.platform,
		EmploymentType: o.employmentType,
		Keywords:       o.keywords,
		DaysAgo:        o.days,
		Limit:          o.limit,
	}
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if o.days < 0 {
		return f, errors.NewInvalidRequestError("--days must be positive, got %d", o.days)
	}
	if cmd.Flags().Changed("min-salary") {
		v := o.minSalary
		f.MinSalary = &v
	}
	if cmd.Flags().Changed("max-salary") {
		v := o.maxSalary
		f.MaxSalary = &v
	}
	if f.MinSalary != nil && f.MaxSalary != nil && *f.MinSalary > *f.MaxSalary {
		return f, errors.NewInvalidRequestError("--min-salary %.0f exceeds --max-salary %.0f", *f.MinSalary, *f.MaxSalary)
	}
	return f, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := commandContext(cmd)

	if searchOpts.suggest {
		return runSuggest(cmd, s)
	}

	f, err := searchOpts.filter(cmd, s.cfg.GetSearchLimit())
	if err != nil {
		return err
	}
	postings, err := s.store.Search(ctx, f)
	if err != nil {
		return err
	}

	if searchOpts.export != "" {
		if err := display.ExportCSV(searchOpts.export, postings); err != nil {
			return err
		}
		if !display.ShouldOutputJSON(cmd) {
			pterm.Success.Printfln("Exported %d postings to %s", len(postings), searchOpts.export)
		}
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(map[string]interface{}{
			"filter":  f,
			"count":   len(postings),
			"results": postings,
		})
	}
	if searchOpts.export != "" {
		return nil
	}
	if len(postings) == 0 {
		pterm.Info.Println("No postings match these filters")
		return nil
	}
	fmt.Printf("%s %d postings\n", sym.Search, len(postings))
	return display.WritePostings(os.Stdout, postings, searchOpts.detailed, time.Now())
}

// suggestions lists the most common values of each filterable column
type suggestions struct {
	Companies       []storage.LabelCount `json:"companies"`
	Locations       []storage.LabelCount `json:"locations"`
	Platforms       []storage.LabelCount `json:"platforms"`
	EmploymentTypes []storage.LabelCount `json:"employment_types"`
}

func runSuggest(cmd *cobra.Command, s *session) error {
	ctx := commandContext(cmd)
	var out suggestions
	for _, part := range []struct {
		field storage.GroupField
		dest  *[]storage.LabelCount
	}{
		{storage.GroupCompany, &out.Companies},
		{storage.GroupLocation, &out.Locations},
		{storage.GroupPlatform, &out.Platforms},
		{storage.GroupEmploymentType, &out.EmploymentTypes},
	} {
		counts, err := s.store.TopN(ctx, part.field)
		if err != nil {
			return err
		}
		*part.dest = counts
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(out)
	}
	for _, section := range []struct {
		title  string
		counts []storage.LabelCount
	}{
		{"Companies", out.Companies},
		{"Locations", out.Locations},
		{"Platforms", out.Platforms},
		{"Employment types", out.EmploymentTypes},
	} {
		table, err := display.CountTable(section.title, section.counts, 0)
		if err != nil {
			return err
		}
		fmt.Print(pterm.DefaultSection.Sprint(section.title))
		fmt.Println(table)
	}
	return nil
}
