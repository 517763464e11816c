// Package command provides the logbook CLI. The root command serves the
// JSON API and the Telegram bot; the export sub-command writes the static
// JSON export and exits.
//
//	./logbook                                     # serve
//	./logbook export --output-dir ./site/data [--s3] [--as-of 2024-06-30]
package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"logbook/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "logbook",
	Short: "Personal pilot logbook with currency tracking and statistics",
	Long: `Personal pilot logbook with currency tracking and statistics.

Without a sub-command the logbook serves its JSON API, Prometheus metrics
and, when TELEGRAM_BOT_TOKEN is set, the Telegram bot. Configuration is
read from the environment and an optional .env file.`,
	SilenceUsage: true,
	RunE:         serve,
}

func serve(cmd *cobra.Command, _ []string) error {
	application, err := app.New()
	if err != nil {
		return err
	}
	return application.Run(cmd.Context())
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
