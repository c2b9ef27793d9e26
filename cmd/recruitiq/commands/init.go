package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/recruitiq/db"
	"github.com/teranos/recruitiq/display"
	"github.com/teranos/recruitiq/sym"
)

// InitCmd creates the database
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: sym.DB + " Create the database and apply migrations",
	Long: `Create the SQLite database (database.path or --db) and apply every
pending migration. Running it again is safe.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := databasePath(cmd, cfg)
	database, err := openDatabase(path)
	if err != nil {
		return err
	}
	defer database.Close()

	version, err := db.Version(database)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(map[string]string{"database_path": path, "schema_version": version})
	}
	pterm.Success.Println(fmt.Sprintf("Database ready at %s (schema %s)", path, version))
	return nil
}
