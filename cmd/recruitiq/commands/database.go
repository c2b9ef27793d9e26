package commands

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/teranos/recruitiq/am"
	"github.com/teranos/recruitiq/db"
	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/logger"
	"github.com/teranos/recruitiq/storage"
)

// loadConfig loads and validates the configuration
func loadConfig() (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "invalid configuration"),
			"run 'recruitiq am where' to see where each setting comes from")
	}
	return cfg, nil
}

// databasePath resolves the --db flag, falling back to database.path
func databasePath(cmd *cobra.Command, cfg *am.Config) string {
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		return path
	}
	return cfg.GetDatabasePath()
}

// openDatabase opens and migrates the database at path
func openDatabase(path string) (*sql.DB, error) {
	database, err := db.OpenWithMigrations(path, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", path)
	}
	return database, nil
}

// session bundles what most commands need
type session struct {
	cfg   *am.Config
	path  string
	db    *sql.DB
	store *storage.Store
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path := databasePath(cmd, cfg)
	database, err := openDatabase(path)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:   cfg,
		path:  path,
		db:    database,
		store: storage.NewStore(database, logger.ComponentLogger("storage")),
	}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// commandContext returns the command's context, which main wires to SIGINT/SIGTERM
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
