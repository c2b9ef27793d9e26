package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/recruitiq/am"
	"github.com/teranos/recruitiq/display"
	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/logger"
	"github.com/teranos/recruitiq/scrape"
	"github.com/teranos/recruitiq/scrape/greenhouse"
	"github.com/teranos/recruitiq/scrape/indeed"
	"github.com/teranos/recruitiq/scrape/linkedin"
	"github.com/teranos/recruitiq/scrape/remoteok"
	"github.com/teranos/recruitiq/sym"
)

// ScrapeCmd collects postings from job boards
var ScrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: sym.Scrape + " Collect postings from job boards",
	Long: sym.Scrape + ` scrape - Collect postings from job boards

Sources run one after another with a politeness delay between requests
(scrape.delay_ms). A failing source is reported and skipped; postings from
the other sources are still saved. Ctrl+C stops after the current source.

Examples:
  recruitiq scrape all --query "data engineer" --location "Berlin"
  recruitiq scrape remoteok --query golang --limit 20
  recruitiq scrape companies --company stripe --company gitlab`,
}

var (
	scrapeQuery     string
	scrapeLocation  string
	scrapeLimit     int
	scrapeCompanies []string
)

type sourceKind string

const (
	sourceIndeed    sourceKind = "indeed"
	sourceLinkedIn  sourceKind = "linkedin"
	sourceRemoteOK  sourceKind = "remoteok"
	sourceCompanies sourceKind = "companies"
)

func init() {
	ScrapeCmd.PersistentFlags().StringVarP(&scrapeQuery, "query", "q", "", "Search keywords (default scrape.query)")
	ScrapeCmd.PersistentFlags().StringVarP(&scrapeLocation, "location", "l", "", "Location (default scrape.location)")
	ScrapeCmd.PersistentFlags().IntVarP(&scrapeLimit, "limit", "n", 0, "Maximum postings per source (default scrape.default_limit)")
	ScrapeCmd.PersistentFlags().StringSliceVar(&scrapeCompanies, "company", nil, "Greenhouse board token; repeatable (default scrape.companies)")

	ScrapeCmd.AddCommand(newScrapeSubcommand("all", "Scrape every source",
		sourceIndeed, sourceLinkedIn, sourceRemoteOK, sourceCompanies))
	ScrapeCmd.AddCommand(newScrapeSubcommand("indeed", "Scrape Indeed search results", sourceIndeed))
	ScrapeCmd.AddCommand(newScrapeSubcommand("linkedin", "Scrape LinkedIn public job search", sourceLinkedIn))
	ScrapeCmd.AddCommand(newScrapeSubcommand("remoteok", "Scrape RemoteOK (API, HTML fallback)", sourceRemoteOK))
	ScrapeCmd.AddCommand(newScrapeSubcommand("companies", "Scrape Greenhouse company career boards", sourceCompanies))
}

func newScrapeSubcommand(use, short string, sources ...sourceKind) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, sources)
		},
	}
}

// scrapeQueryFromFlags fills unset flags from configuration
func scrapeQueryFromFlags(cfg *am.Config) scrape.Query {
	q := scrape.Query{Keywords: scrapeQuery, Location: scrapeLocation, Limit: scrapeLimit}
	if q.Keywords == "" {
		q.Keywords = cfg.Scrape.Query
	}
	if q.Location == "" {
		q.Location = cfg.Scrape.Location
	}
	if q.Limit <= 0 {
		q.Limit = cfg.GetScrapeLimit()
	}
	return q
}

// buildJobs turns the selected sources into runner jobs, one per company board
func buildJobs(cfg *am.Config, fetcher *scrape.Fetcher, q scrape.Query, companies []string, sources []sourceKind) ([]scrape.Job, error) {
	var jobs []scrape.Job
	for _, src := range sources {
		switch src {
		case sourceIndeed:
			jobs = append(jobs, scrape.Job{Scraper: indeed.New(fetcher, cfg.Scrape.IndeedURL, logger.ComponentLogger("indeed")), Query: q})
		case sourceLinkedIn:
			jobs = append(jobs, scrape.Job{Scraper: linkedin.New(fetcher, cfg.Scrape.LinkedInURL, logger.ComponentLogger("linkedin")), Query: q})
		case sourceRemoteOK:
			jobs = append(jobs, scrape.Job{Scraper: remoteok.New(fetcher, cfg.Scrape.RemoteOKURL, logger.ComponentLogger("remoteok")), Query: q})
		case sourceCompanies:
			if len(companies) == 0 {
				companies = cfg.Scrape.Companies
			}
			if len(companies) == 0 {
				return nil, errors.WithHint(errors.NewInvalidRequestError("no company boards to scrape"),
					"pass --company <token> or set scrape.companies")
			}
			gh := greenhouse.New(fetcher, cfg.Scrape.GreenhouseURL, logger.ComponentLogger("greenhouse"))
			for _, company := range companies {
				cq := q
				cq.Company = strings.TrimSpace(company)
				jobs = append(jobs, scrape.Job{Scraper: gh, Query: cq})
			}
		}
	}
	return jobs, nil
}

func runScrape(cmd *cobra.Command, sources []sourceKind) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	jsonOut := display.ShouldOutputJSON(cmd)
	verbosity, _ := cmd.Flags().GetCount("verbose")

	fetcher := scrape.NewFetcher(scrape.FetcherOptions{
		Delay:     time.Duration(s.cfg.Scrape.DelayMS) * time.Millisecond,
		Timeout:   time.Duration(s.cfg.Scrape.TimeoutSeconds) * time.Second,
		UserAgent: s.cfg.Scrape.UserAgent,
	}, logger.ComponentLogger("fetcher"))

	q := scrapeQueryFromFlags(s.cfg)
	jobs, err := buildJobs(s.cfg, fetcher, q, scrapeCompanies, sources)
	if err != nil {
		return err
	}

	var emitter scrape.ProgressEmitter
	if jsonOut {
		emitter = scrape.NewJSONEmitter(os.Stdout)
	} else {
		emitter = scrape.NewCLIEmitter(verbosity)
		pterm.Info.Printfln("Scraping %d source(s) for %q in %q, up to %d postings each",
			len(jobs), q.Keywords, q.Location, q.Limit)
	}

	runner := scrape.NewRunner(s.store, emitter, logger.ComponentLogger("scrape"))
	summary, runErr := runner.Run(commandContext(cmd), jobs)

	if !jsonOut && summary != nil {
		writeScrapeSummary(os.Stdout, summary)
	}
	if runErr != nil {
		return runErr
	}
	if summary.Failures == len(jobs) && len(jobs) > 0 {
		return errors.WithHint(errors.New("every source failed"),
			"re-run with -vv to see request details")
	}
	return nil
}

// writeScrapeSummary prints one row per source plus the totals
func writeScrapeSummary(w io.Writer, summary *scrape.Summary) {
	data := pterm.TableData{{"Source", "Fetched", "Saved", "Invalid", "Failed", "Error"}}
	for _, src := range summary.Sources {
		data = append(data, []string{
			src.Source,
			pterm.Sprint(src.Fetched),
			pterm.Sprint(src.Result.Saved),
			pterm.Sprint(src.Result.Invalid),
			pterm.Sprint(src.Result.Failed),
			src.Error,
		})
	}
	if table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender(); err == nil {
		fmt.Fprintln(w, table)
	}
	fmt.Fprintf(w, "%s Saved %d of %d postings (%d invalid, %d failed) in %s\n",
		sym.Scrape, summary.Totals.Saved, summary.Totals.Total, summary.Totals.Invalid,
		summary.Totals.Failed, summary.Duration.Round(time.Millisecond))
}
