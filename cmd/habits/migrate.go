package main

import (
	"fmt"

	"github.com/aussiebroadwan/habits/internal/habits/app"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Long: `Apply every pending migration to the configured database and exit.

The server applies migrations on startup as well; this command exists for
deployments that run schema changes as a separate step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.LoadConfig()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger, closer := app.NewLogger(cfg)
		defer closer.Close()

		db, err := app.OpenStore(cfg, logger)
		if err != nil {
			color.Red("Migration failed")
			return err
		}
		defer db.Close()

		color.Green("Migrations applied (%s)", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
