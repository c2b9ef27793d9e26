package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/recruitiq/analysis"
	"github.com/teranos/recruitiq/db"
	"github.com/teranos/recruitiq/display"
	"github.com/teranos/recruitiq/logger"
	"github.com/teranos/recruitiq/storage"
	"github.com/teranos/recruitiq/sym"
)

// StatusCmd prints a database overview
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: sym.Status + " Database overview",
	Long:  `Show the database location and schema version, active posting counts per platform, recent scrape and import runs, and disk usage.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var statusRuns int

func init() {
	StatusCmd.Flags().IntVar(&statusRuns, "runs", 5, "Number of recent runs to show")
}

func collectStatus(cmd *cobra.Command, s *session) (*display.Status, error) {
	ctx := commandContext(cmd)
	st := &display.Status{DatabasePath: s.path}

	var err error
	if st.SchemaVer, err = db.Version(s.db); err != nil {
		return nil, err
	}
	if st.Total, err = s.store.CountActive(ctx); err != nil {
		return nil, err
	}
	if st.Recent, err = s.store.CountSince(ctx, time.Now().UTC().AddDate(0, 0, -analysis.RecentWindowDays)); err != nil {
		return nil, err
	}
	if st.Platforms, err = s.store.CountBy(ctx, storage.GroupPlatform, 0); err != nil {
		return nil, err
	}
	if st.LastRuns, err = s.store.RecentRuns(ctx, statusRuns); err != nil {
		return nil, err
	}
	// Disk figures are informational; an unreadable volume does not fail status
	if fs, err := db.Stats(s.path); err != nil {
		logger.ComponentLogger("status").Warnw("Storage stats unavailable", "path", s.path, "error", err)
	} else {
		st.Storage = &fs
	}
	return st, nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := collectStatus(cmd, s)
	if err != nil {
		return err
	}
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(st)
	}
	return display.WriteStatus(os.Stdout, st)
}
