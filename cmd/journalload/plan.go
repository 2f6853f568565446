package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Iron-max114/ai-laegens-bord/internal/capture"
	"github.com/Iron-max114/ai-laegens-bord/internal/exitcode"
	"github.com/Iron-max114/ai-laegens-bord/internal/logging"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run source inspection (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.Dir, "dir", "", "Path to the capture export directory (required)")
	_ = planCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	store := &capture.Store{Dir: cfg.Dir}
	for _, src := range capture.AllSources {
		cap, err := store.Locate(src)
		switch {
		case err != nil:
			fmt.Printf("  %-14s unreadable: %v\n", src.Name, err)
		case cap == nil:
			fmt.Printf("  %-14s absent\n", src.Name)
		default:
			fmt.Printf("  %-14s found  %s\n", src.Name, cap.URL)
		}
	}
	return nil
}
