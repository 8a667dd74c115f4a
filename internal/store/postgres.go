package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/profile-miner/internal/types"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore implements the Store contract over a profiles table. It is
// selected when DATABASE_URL is configured; connection failure is expected
// to degrade to the file store at the call site, never abort the run.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes the pool and ensures the profiles table
// exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS profiles (
			profile_url TEXT PRIMARY KEY,
			data        JSONB NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure profiles table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Exists reports whether the normalized URL is already stored. Query
// failures count as "not stored": the dedup check is advisory.
func (s *PostgresStore) Exists(ctx context.Context, profileURL string) bool {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE profile_url = $1)`,
		types.NormalizeProfileURL(profileURL),
	).Scan(&exists)
	if err != nil {
		return false
	}
	return exists
}

// Upsert replaces the row sharing the key with the new record.
func (s *PostgresStore) Upsert(ctx context.Context, record types.ProfileRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO profiles (profile_url, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (profile_url)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		types.NormalizeProfileURL(record.ProfileURL), data,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// All returns every stored record in insertion order.
func (s *PostgresStore) All(ctx context.Context) ([]types.ProfileRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM profiles ORDER BY updated_at, profile_url`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var records []types.ProfileRecord
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		var record types.ProfileRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("failed to decode profile row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profile rows: %w", err)
	}
	return records, nil
}

// Clear removes every row, returning the removed count.
func (s *PostgresStore) Clear(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM profiles`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear profiles: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
