package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportFilename string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored profiles to a CSV file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFilename, "out", "o", "", "Output filename (default: extracted_data_<date>.csv)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	path, rows, err := a.miner.ExportToCSV(ctx, exportFilename)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d profiles to %s\n", rows, path)
	return nil
}
