package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/recruitiq/display"
	"github.com/teranos/recruitiq/importer"
	"github.com/teranos/recruitiq/logger"
	"github.com/teranos/recruitiq/sym"
)

// ImportCmd loads postings from files
var ImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: sym.Import + " Load postings from JSON or YAML files",
	Long: sym.Import + ` import - Load postings from JSON or YAML files

A file holds a list of posting records, or an object with a "jobs" list.
Records go through the same validation and deduplication as scraped postings.
The format follows the file extension (.yaml/.yml, otherwise JSON).

Examples:
  recruitiq import exports/jobs.json
  recruitiq import board-a.yaml board-b.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	im := importer.New(s.store, logger.ComponentLogger("import"))
	ctx := commandContext(cmd)

	results := make([]*importer.Result, 0, len(args))
	for _, path := range args {
		res, err := im.ImportFile(ctx, path)
		if err != nil {
			return err
		}
		results = append(results, res)
		if !display.ShouldOutputJSON(cmd) {
			pterm.Success.Printfln("%s %s: %d records, %d saved, %d invalid, %d failed",
				sym.Import, path, res.Records, res.Batch.Saved, res.Batch.Invalid, res.Batch.Failed)
		}
	}
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(results)
	}
	return nil
}
