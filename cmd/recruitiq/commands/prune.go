package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/recruitiq/display"
	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/sym"
)

// PruneCmd soft-deletes stale postings
var PruneCmd = &cobra.Command{
	Use:   "prune",
	Short: sym.Prune + " Deactivate stale postings",
	Long: sym.Prune + ` prune - Deactivate postings not seen by a scrape recently

Pruned postings stay in the database but drop out of search, analysis and
reports until a scrape sees them again or --restore is used.

Examples:
  recruitiq prune --older-than 60
  recruitiq prune --restore`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

var (
	pruneOlderThan int
	pruneRestore   bool
)

func init() {
	PruneCmd.Flags().IntVar(&pruneOlderThan, "older-than", 30, "Deactivate postings last scraped more than N days ago")
	PruneCmd.Flags().BoolVar(&pruneRestore, "restore", false, "Reactivate every deactivated posting")
}

func runPrune(cmd *cobra.Command, args []string) error {
	if !pruneRestore && pruneOlderThan <= 0 {
		return errors.NewInvalidRequestError("--older-than must be positive, got %d", pruneOlderThan)
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := commandContext(cmd)

	var (
		n      int64
		action string
	)
	if pruneRestore {
		action = "reactivated"
		n, err = s.store.ReactivateAll(ctx)
	} else {
		action = "deactivated"
		n, err = s.store.DeactivateStale(ctx, time.Now().UTC().AddDate(0, 0, -pruneOlderThan))
	}
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(map[string]interface{}{action: n})
	}
	pterm.Success.Printfln("%s %d postings %s", sym.Prune, n, action)
	return nil
}
