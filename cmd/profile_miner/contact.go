package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	contactName    string
	contactCompany string
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Look up contact details for a person at a company",
	RunE:  runContact,
}

func init() {
	contactCmd.Flags().StringVarP(&contactName, "name", "n", "", "Person name (required)")
	contactCmd.Flags().StringVarP(&contactCompany, "company", "c", "", "Company name (required)")

	if err := contactCmd.MarkFlagRequired("name"); err != nil {
		panic(fmt.Sprintf("failed to mark name flag as required: %v", err))
	}
	if err := contactCmd.MarkFlagRequired("company"); err != nil {
		panic(fmt.Sprintf("failed to mark company flag as required: %v", err))
	}

	rootCmd.AddCommand(contactCmd)
}

func runContact(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	overlay, err := a.miner.Contact(ctx, contactName, contactCompany)
	if err != nil {
		return err
	}
	if overlay.Empty() {
		fmt.Printf("No contact details found for %s at %s\n", contactName, contactCompany)
		return nil
	}

	if overlay.Email != "" {
		fmt.Printf("Email:   %s\n", overlay.Email)
	}
	if overlay.Phone1 != "" {
		fmt.Printf("Phone 1: %s\n", overlay.Phone1)
	}
	if overlay.Phone2 != "" {
		fmt.Printf("Phone 2: %s\n", overlay.Phone2)
	}
	if overlay.JobTitle != "" {
		fmt.Printf("Title:   %s\n", overlay.JobTitle)
	}
	if overlay.AboutCompany != "" {
		fmt.Printf("About:   %s\n", overlay.AboutCompany)
	}
	return nil
}
