package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Iron-max114/ai-laegens-bord/internal/db"
	"github.com/Iron-max114/ai-laegens-bord/internal/exitcode"
	"github.com/Iron-max114/ai-laegens-bord/internal/ingest"
	"github.com/Iron-max114/ai-laegens-bord/internal/logging"
)

var importConfigFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a capture export directory into the database",
	RunE:  runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&cfg.Dir, "dir", "", "Path to the capture export directory (required)")
	f.StringVar(&importConfigFile, "config", "", "Optional YAML config selecting a subset of sources")
	_ = importCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if importConfigFile != "" {
		if err := cfg.LoadFromFile(importConfigFile); err != nil {
			log.Error().Err(err).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
	}
	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	// Schema setup is the only fatal phase: no importer runs without it.
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		log.Error().Err(err).Msg("schema setup failed")
		os.Exit(exitcode.SchemaError)
	}

	summary, err := ingest.Run(ctx, pool, log, &cfg)
	if err != nil {
		if pe, ok := err.(*ingest.PipelineError); ok {
			log.Error().Err(pe.Err).Str("domain", pe.Phase).Msg("import failed")
		} else {
			log.Error().Err(err).Msg("import failed")
		}
		os.Exit(exitcode.ImportError)
	}

	fmt.Println("Imported rows per table:")
	for _, c := range summary.Counts {
		fmt.Printf("  %-26s %d\n", c.Domain, c.Rows)
	}
	fmt.Printf("Total: %d rows in %.1fs\n", summary.Total(), summary.DurationTotal.Seconds())
	return nil
}
