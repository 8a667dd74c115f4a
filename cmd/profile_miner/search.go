package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchKeywords string
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for profiles without extracting them",
	Long:  "Runs the primary and expanded searches, deduplicates and relevance-filters the hits, and prints the kept URLs.",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchKeywords, "keywords", "k", "", "Search keywords (required)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 10, "Maximum number of profiles")

	if err := searchCmd.MarkFlagRequired("keywords"); err != nil {
		panic(fmt.Sprintf("failed to mark keywords flag as required: %v", err))
	}

	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	hits, err := a.miner.SearchProfiles(ctx, searchKeywords, searchLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d profiles:\n", len(hits))
	for i, hit := range hits {
		fmt.Printf("%d. %s\n   %s\n", i+1, hit.Title, hit.URL)
	}
	return nil
}
