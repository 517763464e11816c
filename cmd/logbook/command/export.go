package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"logbook/internal/app"
	"logbook/internal/dates"
)

var (
	outputDir string
	toS3      bool
	asOf      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dashboard data as static JSON files",
	Long: `Write the dashboard data as static JSON files: flights, stats, charts,
leaderboards, aircraft, people and routes. Files go to --output-dir, to the
EXPORT_S3_BUCKET bucket with --s3, or both.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, _ []string) error {
	ref := time.Now()
	if asOf != "" {
		t, err := dates.ParseISO(asOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of %q: %w", asOf, err)
		}
		ref = t
	}

	cfg, logger, err := app.LoadConfig()
	if err != nil {
		return err
	}
	// The export never talks to Telegram
	cfg.TelegramToken = ""

	application, err := app.NewWithConfig(cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	names, err := application.Export(cmd.Context(), outputDir, toS3, dates.Day(ref))
	if err != nil {
		return err
	}
	application.Logger().Info("Export complete", zap.Strings("files", names))
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory receiving the JSON files")
	exportCmd.Flags().BoolVar(&toS3, "s3", false, "upload to the EXPORT_S3_BUCKET bucket")
	exportCmd.Flags().StringVar(&asOf, "as-of", "", "reference date (YYYY-MM-DD), default today")
	rootCmd.AddCommand(exportCmd)
}
