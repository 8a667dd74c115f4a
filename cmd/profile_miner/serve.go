package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-miner/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for searching, extracting, enriching, and exporting profiles.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	// The server owns the store shutdown; only the LLM client is closed here.
	defer func() {
		if a.llm != nil {
			if err := a.llm.Close(); err != nil {
				fmt.Printf("Warning: failed to close LLM client: %v\n", err)
			}
		}
	}()

	srv, err := server.New(server.Config{
		Port:  servePort,
		Miner: a.miner,
		Store: a.store,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
