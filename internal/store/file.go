package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/profile-miner/internal/schemas"
	"github.com/jonathan/profile-miner/internal/types"
)

// DefaultFileName is the store file created under the data directory.
const DefaultFileName = "profiles.json"

var _ Store = (*FileStore)(nil)

// FileStore keeps the full collection in memory and rewrites one JSON file
// on every mutation. A missing or corrupt file at open time is treated as
// an empty store: the loss is logged, never surfaced to the first caller.
type FileStore struct {
	mu       sync.Mutex
	path     string
	profiles []types.ProfileRecord
}

// OpenFile opens (or creates) the store file under dir. The only error
// condition is an unusable directory; file-level problems degrade to an
// empty collection.
func OpenFile(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	s := &FileStore{path: filepath.Join(dir, DefaultFileName)}
	s.load()
	return s, nil
}

// load reads the backing file into memory, validating it against the store
// schema. Any failure leaves the store empty.
func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[STORE] starting empty, cannot read %s: %v", s.path, err)
		}
		return
	}

	if err := schemas.ValidateStoreDocument(data); err != nil {
		log.Printf("[STORE] starting empty, %s failed validation: %v", s.path, err)
		return
	}

	var profiles []types.ProfileRecord
	if err := json.Unmarshal(data, &profiles); err != nil {
		log.Printf("[STORE] starting empty, %s is corrupt: %v", s.path, err)
		return
	}

	s.profiles = profiles
}

// flush rewrites the whole collection. Callers must hold the lock.
func (s *FileStore) flush() error {
	records := s.profiles
	if records == nil {
		records = []types.ProfileRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file %s: %w", s.path, err)
	}
	return nil
}

// Exists reports whether the normalized URL is already stored.
func (s *FileStore) Exists(_ context.Context, profileURL string) bool {
	key := types.NormalizeProfileURL(profileURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.profiles {
		if types.NormalizeProfileURL(s.profiles[i].ProfileURL) == key {
			return true
		}
	}
	return false
}

// Upsert replaces any record sharing the key, appends the new record, and
// flushes.
func (s *FileStore) Upsert(_ context.Context, record types.ProfileRecord) error {
	key := types.NormalizeProfileURL(record.ProfileURL)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.profiles[:0]
	for i := range s.profiles {
		if types.NormalizeProfileURL(s.profiles[i].ProfileURL) != key {
			kept = append(kept, s.profiles[i])
		}
	}
	s.profiles = append(kept, record)

	return s.flush()
}

// All returns a snapshot copy of the collection.
func (s *FileStore) All(_ context.Context) ([]types.ProfileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]types.ProfileRecord, len(s.profiles))
	copy(snapshot, s.profiles)
	return snapshot, nil
}

// Clear empties the store and flushes, returning the removed count.
func (s *FileStore) Clear(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.profiles)
	s.profiles = nil
	if err := s.flush(); err != nil {
		return removed, err
	}
	return removed, nil
}

// Close flushes one final time.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}
