package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Iron-max114/ai-laegens-bord/internal/db"
	"github.com/Iron-max114/ai-laegens-bord/internal/exitcode"
	"github.com/Iron-max114/ai-laegens-bord/internal/export"
	"github.com/Iron-max114/ai-laegens-bord/internal/logging"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export normalized biochemistry results to a Parquet file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&cfg.OutFile, "out", "", "Output Parquet path (required)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if cfg.DSN == "" {
		log.Error().Msg("--dsn or JOURNAL_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	count, err := export.WriteBiochemistry(ctx, pool, log, cfg.OutFile)
	if err != nil {
		log.Error().Err(err).Msg("export failed")
		os.Exit(exitcode.ImportError)
	}

	fmt.Printf("Exported %d biochemistry records to %s\n", count, cfg.OutFile)
	return nil
}
