// Package config provides environment-backed configuration for the CLI and
// server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultDataDir is used when DATA_DIR is unset; the store file and CSV
// exports land here.
const DefaultDataDir = "data"

// Config holds every tunable the pipeline reads. All fields are optional;
// components configured without a key degrade to their fallback behavior
// rather than failing, except where a command explicitly requires one.
type Config struct {
	// Search
	GoogleAPIKey   string // GOOGLE_SEARCH_API_KEY
	SearchEngineID string // GOOGLE_SEARCH_ENGINE_ID

	// Extraction and enrichment
	NubelaAPIKey string // NUBELA_API_KEY (Proxycurl fallback)
	ApolloAPIKey string // APOLLO_API_KEY (contact enrichment)

	// LLM
	GeminiAPIKey string // GEMINI_API_KEY

	// Persistence
	DatabaseURL string // DATABASE_URL (optional Postgres backend)
	DataDir     string // DATA_DIR (store file and exports)

	// Behavior
	Debug      bool // DEBUG
	UseBrowser bool // USE_BROWSER (headless render fallback for sparse pages)
}

// FromEnv reads every known variable. Missing variables leave zero values;
// callers decide per-component what a missing key means.
func FromEnv() Config {
	cfg := Config{
		GoogleAPIKey:   os.Getenv("GOOGLE_SEARCH_API_KEY"),
		SearchEngineID: os.Getenv("GOOGLE_SEARCH_ENGINE_ID"),
		NubelaAPIKey:   os.Getenv("NUBELA_API_KEY"),
		ApolloAPIKey:   os.Getenv("APOLLO_API_KEY"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DataDir:        os.Getenv("DATA_DIR"),
		Debug:          envBool("DEBUG"),
		UseBrowser:     envBool("USE_BROWSER"),
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	return cfg
}

// HasSearch reports whether the Google Custom Search credentials are
// complete.
func (c *Config) HasSearch() bool {
	return c.GoogleAPIKey != "" && c.SearchEngineID != ""
}

// Validate checks cross-field consistency. Missing keys are not errors
// here; they surface as degraded behavior or per-command errors.
func (c *Config) Validate() error {
	if c.GoogleAPIKey != "" && c.SearchEngineID == "" {
		return fmt.Errorf("config error: GOOGLE_SEARCH_API_KEY is set but GOOGLE_SEARCH_ENGINE_ID is not")
	}
	if c.SearchEngineID != "" && c.GoogleAPIKey == "" {
		return fmt.Errorf("config error: GOOGLE_SEARCH_ENGINE_ID is set but GOOGLE_SEARCH_API_KEY is not")
	}
	if c.DataDir == "" {
		return fmt.Errorf("config error: data directory must not be empty")
	}
	return nil
}

func envBool(name string) bool {
	v := os.Getenv(name)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		// Accept the loose truthy convention ("1", "true", "yes").
		return v == "yes" || v == "on"
	}
	return b
}
