package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Iron-max114/ai-laegens-bord/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "journalload",
	Short: "Health-record portal export → Postgres importer",
	Long:  "Reads per-endpoint JSON capture files exported from a personal health-record portal and normalizes them into a relational database.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("JOURNAL_DB_URL"), "Postgres connection string (or set JOURNAL_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
