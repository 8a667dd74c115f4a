// Package store provides the persistent profile collection and its dedup
// authority. The default backend keeps the full collection in one JSON file
// rewritten on every mutation (write-through); an optional Postgres backend
// offers the same contract for multi-host deployments.
package store

import (
	"context"

	"github.com/jonathan/profile-miner/internal/types"
)

// Store is the persistence contract the pipeline depends on. Keys are
// normalized profile URLs; an upsert with an existing key replaces the
// record wholesale, never merging fields.
type Store interface {
	// Exists reports whether a record with the given (unnormalized) URL is
	// already stored.
	Exists(ctx context.Context, profileURL string) bool
	// Upsert stores a record, replacing any record with the same key, and
	// flushes the collection to durable storage before returning.
	Upsert(ctx context.Context, record types.ProfileRecord) error
	// All returns a snapshot copy of every stored record; callers never
	// observe later mutations through the returned slice.
	All(ctx context.Context) ([]types.ProfileRecord, error)
	// Clear empties the store, returning the number of removed records.
	Clear(ctx context.Context) (int, error)
	// Close flushes one final time and releases resources.
	Close() error
}
