package main

import (
	"fmt"

	"github.com/aussiebroadwan/habits/internal/habits/app"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Habit tracking API server",
	Long: `Habits serves the habit tracking REST API: accounts, habits, daily
check-ins, goals with ordered steps, and categories.

CONFIGURATION:

  Everything is read from the environment, or from a .env file in the
  working directory. The common settings are:

  PORT              listen port (default 5000)
  DATABASE_URL      postgres DSN; without it a sqlite file is used
  DATABASE_FILE     sqlite path (default habits.db)
  JWT_SECRET        HS256 secret, required outside ENV=dev
  APP_TIMEZONE      zone "today" is computed in (default Local)

USAGE:

  habits              # same as 'habits serve'
  habits serve        # run the API server
  habits migrate      # apply database migrations and exit
  habits version      # print the build version`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return application.Run()
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
