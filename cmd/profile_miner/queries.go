package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	queriesSeed  string
	queriesCount int
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "Expand a seed query into alternative search queries",
	RunE:  runQueries,
}

func init() {
	queriesCmd.Flags().StringVarP(&queriesSeed, "query", "q", "", "Seed query (required)")
	queriesCmd.Flags().IntVarP(&queriesCount, "count", "c", 3, "Number of alternative queries")

	if err := queriesCmd.MarkFlagRequired("query"); err != nil {
		panic(fmt.Sprintf("failed to mark query flag as required: %v", err))
	}

	rootCmd.AddCommand(queriesCmd)
}

func runQueries(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	expanded := a.miner.ExpandQueries(ctx, queriesSeed, queriesCount)
	for i, q := range expanded {
		fmt.Printf("%d. %s\n", i+1, q)
	}
	return nil
}
