package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-miner/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <url>...",
	Short: "Extract one or more profiles by URL and save them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	hits := make([]types.SearchHit, 0, len(args))
	for _, url := range args {
		hits = append(hits, types.SearchHit{URL: url})
	}

	records, stats := a.miner.ProcessProfiles(ctx, hits)
	for _, r := range records {
		fmt.Printf("Extracted and saved: %s (%s at %s)\n", r.Name, r.JobTitle, r.Company)
	}
	fmt.Printf("Done: %d processed, %d saved, %d skipped, %d failed\n",
		stats.Processed, stats.Saved, stats.Skipped, stats.Failed)
	return nil
}
