package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/recruitiq/display"
	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/logger"
	"github.com/teranos/recruitiq/report"
	"github.com/teranos/recruitiq/sym"
)

// ReportCmd generates HTML reports
var ReportCmd = &cobra.Command{
	Use:   "report <executive|salary|skills|companies|market|all>",
	Short: sym.Report + " Generate HTML reports",
	Long: sym.Report + ` report - Generate self-contained HTML reports

Reports are written to report.output_dir (or --output-dir) as
<kind>_YYYYMMDD_HHMMSS.html with inline styles and SVG charts.

Examples:
  recruitiq report executive --days 30
  recruitiq report salary --title engineer --title developer
  recruitiq report market --role "data scientist"
  recruitiq report companies --company stripe --company gitlab
  recruitiq report all`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"executive", "salary", "skills", "companies", "market", "all"},
	RunE:      runReport,
}

var reportOpts report.Options

func init() {
	f := ReportCmd.Flags()
	f.StringVarP(&reportOpts.OutputDir, "output-dir", "o", "", "Directory for generated files (default report.output_dir)")
	f.IntVar(&reportOpts.PeriodDays, "days", report.DefaultPeriodDays, "Executive summary period in days")
	f.StringVar(&reportOpts.FocusRole, "role", "", "Market report: only titles containing this")
	f.StringSliceVar(&reportOpts.Titles, "title", nil, "Salary report: titles to include; repeatable")
	f.StringSliceVar(&reportOpts.Companies, "company", nil, "Company report: companies to include; repeatable")
}

// reportKinds resolves the argument to the reports to generate
func reportKinds(arg string) ([]report.Kind, error) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	if arg == "all" {
		return report.Kinds, nil
	}
	k := report.Kind(arg)
	if !k.Valid() {
		return nil, errors.WithHint(errors.NewInvalidRequestError("unknown report %q", arg),
			"available reports: executive, salary, skills, companies, market, all")
	}
	return []report.Kind{k}, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	kinds, err := reportKinds(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	gen, err := report.NewGenerator(s.store, newAnalyzer(s), logger.ComponentLogger("report"))
	if err != nil {
		return err
	}
	opts := reportOpts
	if opts.OutputDir == "" {
		opts.OutputDir = s.cfg.GetReportDir()
	}

	ctx := commandContext(cmd)
	written := make(map[report.Kind]string, len(kinds))
	for _, k := range kinds {
		path, err := gen.Generate(ctx, k, opts)
		if err != nil {
			return errors.Wrapf(err, "%s report", k)
		}
		written[k] = path
		if !display.ShouldOutputJSON(cmd) {
			pterm.Success.Printfln("%s report written to %s", k, path)
		}
	}
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(written)
	}
	return nil
}
