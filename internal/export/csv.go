// Package export writes the stored profile collection to CSV for
// spreadsheet handoff.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/profile-miner/internal/store"
)

// Header is the fixed column set, written even when the store is empty.
var Header = []string{
	"Profile URL",
	"Name",
	"Description",
	"Company",
	"Job Title",
	"Followers",
	"Email",
	"Phone 1",
	"Phone 2",
	"About Company",
	"Profile Summary",
}

// DefaultFileName returns the dated export name, e.g.
// extracted_data_2026-08-29.csv.
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("extracted_data_%s.csv", now.Format("2006-01-02"))
}

// WriteCSV exports every stored record to path. The store is only read,
// never mutated. Returns the number of data rows written.
func WriteCSV(ctx context.Context, s store.Store, path string) (int, error) {
	records, err := s.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read profiles for export: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create export directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return 0, fmt.Errorf("failed to write export header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ProfileURL,
			r.Name,
			r.Description,
			r.Company,
			r.JobTitle,
			r.Followers,
			r.Email,
			r.Phone1,
			r.Phone2,
			r.AboutCompany,
			r.ProfileSummary,
		}
		if err := w.Write(row); err != nil {
			return 0, fmt.Errorf("failed to write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush export file: %w", err)
	}
	return len(records), nil
}
