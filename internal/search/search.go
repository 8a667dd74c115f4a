// Package search provides keyword search over a web search backend,
// producing candidate profile hits for the mining pipeline.
package search

import (
	"context"

	"github.com/jonathan/profile-miner/internal/types"
)

// Provider abstracts a search engine that returns candidate hits for a
// query. Implementations must treat upstream failures as non-fatal and
// degrade to an empty result set; callers cannot distinguish "no results"
// from "backend down", by design.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]types.SearchHit, error)
}
