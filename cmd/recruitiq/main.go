package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/recruitiq/cmd/recruitiq/commands"
	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/logger"
	"github.com/teranos/recruitiq/sym"
)

var rootCmd = &cobra.Command{
	Use:   "recruitiq",
	Short: "RecruitIQ - job market intelligence from the command line",
	Long: `RecruitIQ - job listing aggregation and analytics.

RecruitIQ collects job postings from job boards and company career sites,
normalizes and deduplicates them into a local SQLite database, and turns them
into searches, market statistics and HTML reports.

Available commands:
  init     - Create the database and apply migrations
  ` + sym.Scrape + ` scrape   - Collect postings from job boards
  ` + sym.Import + ` import   - Load postings from JSON or YAML files
  ` + sym.Search + ` search   - Filter and list stored postings
  ` + sym.Analyze + ` analyze  - Market statistics, skills, trends and salaries
  ` + sym.Report + ` report   - Generate HTML reports
  ` + sym.Status + ` status   - Database overview
  ` + sym.Prune + ` prune    - Deactivate stale postings
  ` + sym.AM + ` am       - Manage configuration

Examples:
  recruitiq init
  recruitiq scrape all --query "golang developer" --limit 25
  recruitiq search --title engineer --min-salary 100000
  recruitiq analyze skills
  recruitiq report executive`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		logJSON, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(logJSON, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger.Logger.Debugw("Logger initialized", "verbosity", logger.LevelName(verbosity), "command", cmd.CommandPath())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().Bool("json", false, "Print command results as JSON")
	rootCmd.PersistentFlags().String("db", "", "Database path (overrides database.path)")

	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.ScrapeCmd)
	rootCmd.AddCommand(commands.ImportCmd)
	rootCmd.AddCommand(commands.SearchCmd)
	rootCmd.AddCommand(commands.AnalyzeCmd)
	rootCmd.AddCommand(commands.ReportCmd)
	rootCmd.AddCommand(commands.StatusCmd)
	rootCmd.AddCommand(commands.PruneCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(exitCode(err))
	}
}

// Exit codes
const (
	exitFailure  = 1
	exitUsage    = 2
	exitNotFound = 3
)

func exitCode(err error) int {
	switch {
	case errors.IsInvalidRequestError(err):
		return exitUsage
	case errors.IsNotFoundError(err):
		return exitNotFound
	default:
		return exitFailure
	}
}

// errorHints returns the hints attached along the wrap chain, falling back
// to a usage pointer for rejected input
func errorHints(err error) []string {
	hints := errors.GetAllHints(err)
	if len(hints) == 0 && errors.IsInvalidRequestError(err) {
		hints = append(hints, "run the command with --help for usage")
	}
	return hints
}

// printError shows the error and its hints
func printError(w io.Writer, err error) {
	pterm.Error.WithWriter(w).Println(err.Error())
	if hints := errorHints(err); len(hints) > 0 {
		fmt.Fprintf(w, "  hint: %s\n", strings.Join(hints, "\n  hint: "))
	}
}
