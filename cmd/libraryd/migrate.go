package main

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-records-go/library/shell/config"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

func newMigrateCommand(root *rootOptions) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigration(cmd.Context(), root, postgresengine.MigrateUp)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigration(cmd.Context(), root, postgresengine.MigrateDown)
			},
		},
	)

	return migrate
}

func runMigration(ctx context.Context, root *rootOptions, migration func(*sql.DB) error) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	db, err := config.NewSQLDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err = migration(db); err != nil {
		return err
	}

	newLogger(cfg).InfoContext(ctx, "migration finished")

	return nil
}
