package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/profile-miner/internal/config"
	"github.com/jonathan/profile-miner/internal/enrich"
	"github.com/jonathan/profile-miner/internal/extract"
	"github.com/jonathan/profile-miner/internal/llm"
	"github.com/jonathan/profile-miner/internal/observability"
	"github.com/jonathan/profile-miner/internal/pipeline"
	"github.com/jonathan/profile-miner/internal/queries"
	"github.com/jonathan/profile-miner/internal/relevance"
	"github.com/jonathan/profile-miner/internal/search"
	"github.com/jonathan/profile-miner/internal/store"
	"github.com/jonathan/profile-miner/internal/summary"
)

// app bundles everything a command needs plus the cleanup that must run when
// the command finishes.
type app struct {
	cfg   config.Config
	miner *pipeline.Miner
	store store.Store
	llm   llm.Client
}

// newApp wires the pipeline from environment configuration. Every optional
// stage degrades when its key is missing; only an unusable data directory is
// fatal.
func newApp(ctx context.Context) (*app, error) {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	if cfg.DatabaseURL != "" {
		pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing with the file store...\n")
		} else {
			a.store = pg
		}
	}
	if a.store == nil {
		fs, err := store.OpenFile(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open profile store: %w", err)
		}
		a.store = fs
	}

	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM client: %v\n", err)
			fmt.Printf("Continuing with deterministic fallbacks...\n")
		} else {
			a.llm = client
		}
	}

	opts := pipeline.Options{
		Expander:   queries.NewExpander(a.llm),
		Filter:     relevance.NewFilter(a.llm),
		Summarizer: summary.NewSummarizer(a.llm),
		Store:      a.store,
		DataDir:    cfg.DataDir,
		Verbose:    rootVerbose || cfg.Debug,
	}

	if cfg.HasSearch() {
		opts.Search = search.NewGoogleClient(cfg.GoogleAPIKey, cfg.SearchEngineID)
	}

	fetcherOpts := []extract.Option{}
	if cfg.NubelaAPIKey != "" {
		fetcherOpts = append(fetcherOpts, extract.WithProxycurl(extract.NewProxycurlClient(cfg.NubelaAPIKey)))
	}
	if cfg.UseBrowser {
		fetcherOpts = append(fetcherOpts, extract.WithBrowser(opts.Verbose))
	}
	opts.Fetcher = extract.NewFetcher(fetcherOpts...)

	if cfg.ApolloAPIKey != "" {
		opts.Enricher = enrich.NewEnricher(cfg.ApolloAPIKey)
	}

	a.miner = pipeline.NewMiner(opts, observability.NewPrinter(os.Stdout))
	return a, nil
}

// Close releases the LLM client and flushes the store.
func (a *app) Close() {
	if a.llm != nil {
		if err := a.llm.Close(); err != nil {
			fmt.Printf("Warning: failed to close LLM client: %v\n", err)
		}
	}
	if err := a.store.Close(); err != nil {
		fmt.Printf("Warning: failed to close store: %v\n", err)
	}
}
