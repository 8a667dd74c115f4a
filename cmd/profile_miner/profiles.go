package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var profilesClear bool

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List or clear the stored profiles",
	RunE:  runProfiles,
}

func init() {
	profilesCmd.Flags().BoolVar(&profilesClear, "clear", false, "Remove every stored profile")
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if profilesClear {
		removed, err := a.store.Clear(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear profiles: %w", err)
		}
		fmt.Printf("Removed %d profiles\n", removed)
		return nil
	}

	records, err := a.store.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to read profiles: %w", err)
	}

	fmt.Printf("%d profiles stored:\n", len(records))
	for i, record := range records {
		fmt.Printf("%d. %s (%s at %s)\n   %s\n", i+1, record.Name, record.JobTitle, record.Company, record.ProfileURL)
	}
	return nil
}
