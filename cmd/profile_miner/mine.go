package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	mineKeywords string
	mineLimit    int
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Search, extract, enrich, and save profiles in one run",
	Long:  "Runs the full pipeline: searches for profiles matching the keywords, extracts each new hit, enriches it with contact details when configured, and persists every sufficient record.",
	RunE:  runMine,
}

func init() {
	mineCmd.Flags().StringVarP(&mineKeywords, "keywords", "k", "", "Search keywords (required)")
	mineCmd.Flags().IntVarP(&mineLimit, "limit", "l", 10, "Maximum number of profiles")

	if err := mineCmd.MarkFlagRequired("keywords"); err != nil {
		panic(fmt.Sprintf("failed to mark keywords flag as required: %v", err))
	}

	rootCmd.AddCommand(mineCmd)
}

func runMine(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	records, stats, err := a.miner.MineProfiles(ctx, mineKeywords, mineLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s: processed %d, saved %d, skipped %d, failed %d\n",
		stats.RunID, stats.Processed, stats.Saved, stats.Skipped, stats.Failed)
	for _, record := range records {
		fmt.Printf("  %s - %s\n", record.Name, record.ProfileURL)
	}
	return nil
}
