// Package pipeline provides the high-level orchestration for profile mining:
// search, dedup, relevance filtering, extraction, enrichment, and persistence.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/profile-miner/internal/enrich"
	"github.com/jonathan/profile-miner/internal/export"
	"github.com/jonathan/profile-miner/internal/observability"
	"github.com/jonathan/profile-miner/internal/queries"
	"github.com/jonathan/profile-miner/internal/relevance"
	"github.com/jonathan/profile-miner/internal/search"
	"github.com/jonathan/profile-miner/internal/store"
	"github.com/jonathan/profile-miner/internal/summary"
	"github.com/jonathan/profile-miner/internal/types"
)

const (
	// primarySearchCap bounds the primary query's result count.
	primarySearchCap = 30
	// expandedQueryCount is how many alternative queries the expander produces.
	expandedQueryCount = 3
	// expandedSearchCap bounds each expanded query's result count.
	expandedSearchCap = 15
	// processDelay is the pause between consecutive profile extractions.
	processDelay = 2 * time.Second
)

// ExtractStatus describes the outcome of a single URL extraction.
type ExtractStatus string

const (
	// StatusExtracted means a sufficient record was produced.
	StatusExtracted ExtractStatus = "extracted"
	// StatusSkipped means the URL was already stored; no network was used.
	StatusSkipped ExtractStatus = "skipped"
	// StatusInsufficient means extraction ran but yielded no usable record.
	StatusInsufficient ExtractStatus = "insufficient"
)

// ProfileFetcher extracts a profile record from a URL. A nil record means
// the URL yielded nothing usable.
type ProfileFetcher interface {
	Fetch(ctx context.Context, profileURL string) *types.ProfileRecord
}

// ContactEnricher resolves contact details for a person at a company.
type ContactEnricher interface {
	Match(ctx context.Context, name, company string) types.ContactOverlay
}

var _ ContactEnricher = (*enrich.Enricher)(nil)

// RelevanceFilter judges whether a search hit matches the user's keywords.
type RelevanceFilter interface {
	IsRelevant(ctx context.Context, hit types.SearchHit, query string) bool
}

var _ RelevanceFilter = (*relevance.Filter)(nil)

// Options holds the collaborators a Miner composes. Search and Store are
// required for the full flow; everything else is optional and degrades to
// fallback behavior when absent.
type Options struct {
	Search     search.Provider
	Expander   *queries.Expander
	Filter     RelevanceFilter
	Fetcher    ProfileFetcher
	Enricher   ContactEnricher
	Summarizer *summary.Summarizer
	Store      store.Store
	DataDir    string
	Verbose    bool
	// Delay overrides the pause between extractions; zero keeps the default.
	Delay time.Duration
}

// RunStats holds the per-run counters from a processing pass.
type RunStats struct {
	RunID     string `json:"run_id"`
	Processed int    `json:"processed"`
	Saved     int    `json:"saved"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

// Miner wires the mining stages together. All methods are safe to call with
// partially configured collaborators; missing stages degrade rather than
// fail, except search which has no substitute.
type Miner struct {
	search     search.Provider
	expander   *queries.Expander
	filter     RelevanceFilter
	fetcher    ProfileFetcher
	enricher   ContactEnricher
	summarizer *summary.Summarizer
	store      store.Store
	dataDir    string
	verbose    bool
	delay      time.Duration
	printer    *observability.Printer
}

// NewMiner builds a Miner from options, filling in fallback-only stages for
// anything left nil.
func NewMiner(opts Options, printer *observability.Printer) *Miner {
	m := &Miner{
		search:     opts.Search,
		expander:   opts.Expander,
		filter:     opts.Filter,
		fetcher:    opts.Fetcher,
		enricher:   opts.Enricher,
		summarizer: opts.Summarizer,
		store:      opts.Store,
		dataDir:    opts.DataDir,
		verbose:    opts.Verbose,
		delay:      opts.Delay,
		printer:    printer,
	}
	if m.expander == nil {
		m.expander = queries.NewExpander(nil)
	}
	if m.filter == nil {
		m.filter = relevance.NewFilter(nil)
	}
	if m.summarizer == nil {
		m.summarizer = summary.NewSummarizer(nil)
	}
	if m.delay == 0 {
		m.delay = processDelay
	}
	if m.printer == nil {
		m.printer = observability.NewPrinter(os.Stdout)
	}
	return m
}

// SearchProfiles runs the primary query plus expanded variants, merges the
// hit sets with first-seen-wins dedup, relevance-filters the merged set, and
// truncates to limit.
func (m *Miner) SearchProfiles(ctx context.Context, keywords string, limit int) ([]types.SearchHit, error) {
	if m.search == nil {
		return nil, fmt.Errorf("search is not configured (set GOOGLE_SEARCH_API_KEY and GOOGLE_SEARCH_ENGINE_ID)")
	}
	if limit <= 0 {
		return nil, nil
	}

	base := fmt.Sprintf(`site:linkedin.com/in "%s"`, keywords)

	fmt.Printf("Searching: %s\n", base)
	primary, err := m.search.Search(ctx, base, min(limit, primarySearchCap))
	if err != nil {
		fmt.Printf("Warning: primary search failed: %v\n", err)
	}

	expanded := m.expander.Expand(ctx, base, expandedQueryCount)
	if m.verbose {
		m.printer.PrintQueries(base, expanded)
	}

	seen := make(map[string]bool, len(primary))
	merged := make([]types.SearchHit, 0, len(primary))
	for _, hit := range primary {
		key := types.NormalizeProfileURL(hit.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, hit)
	}

	for _, q := range expanded {
		hits, err := m.search.Search(ctx, q, expandedSearchCap)
		if err != nil {
			fmt.Printf("Warning: expanded search failed for %q: %v\n", q, err)
			continue
		}
		for _, hit := range hits {
			key := types.NormalizeProfileURL(hit.URL)
			if seen[key] {
				continue
			}
			seen[key] = true
			hit.SourceQuery = types.SourceAdditional
			merged = append(merged, hit)
		}
	}

	// Filtering runs only after every search completed, so a slow filter
	// never interleaves with paging. The filter judges against the bare
	// keywords, not the site-scoped query string.
	kept := merged[:0]
	for _, hit := range merged {
		if m.filter.IsRelevant(ctx, hit, keywords) {
			kept = append(kept, hit)
		}
	}

	if len(kept) > limit {
		kept = kept[:limit]
	}
	if m.verbose {
		m.printer.PrintSearchHits(kept)
	}
	return kept, nil
}

// ExpandQueries exposes the expander for the queries command and endpoint.
func (m *Miner) ExpandQueries(ctx context.Context, seed string, count int) []string {
	return m.expander.Expand(ctx, seed, count)
}

// ExtractProfileFromURL extracts a single profile. Already-stored URLs are
// skipped without touching the network.
func (m *Miner) ExtractProfileFromURL(ctx context.Context, profileURL string) (ExtractStatus, *types.ProfileRecord) {
	if m.store != nil && m.store.Exists(ctx, profileURL) {
		return StatusSkipped, nil
	}
	if m.fetcher == nil {
		return StatusInsufficient, nil
	}

	record := m.fetcher.Fetch(ctx, profileURL)
	if !record.Sufficient() {
		return StatusInsufficient, nil
	}

	if m.enricher != nil && record.Name != "" && record.Company != "" {
		overlay := m.enricher.Match(ctx, record.Name, record.Company)
		overlay.Apply(record)
	}

	if record.Description != "" {
		record.ProfileSummary = m.summarizer.Summarize(ctx, summary.Facts{
			Name:     record.Name,
			Headline: record.Description,
			Company:  record.Company,
			Title:    record.JobTitle,
		})
	}

	if m.verbose {
		m.printer.PrintProfile(record)
	}
	return StatusExtracted, record
}

// ProcessProfiles extracts and persists each hit sequentially, pausing
// between URLs. A failing URL never aborts the rest; every extracted record
// is persisted immediately so partial progress survives interruption.
func (m *Miner) ProcessProfiles(ctx context.Context, hits []types.SearchHit) ([]types.ProfileRecord, RunStats) {
	stats := RunStats{RunID: uuid.NewString()}
	var saved []types.ProfileRecord

	for i, hit := range hits {
		if i > 0 {
			select {
			case <-ctx.Done():
				fmt.Printf("Warning: processing canceled after %d of %d profiles\n", i, len(hits))
				return saved, stats
			case <-time.After(m.delay):
			}
		}

		stats.Processed++
		fmt.Printf("[%s] Processing %d/%d: %s\n", stats.RunID, i+1, len(hits), hit.URL)

		status, record := m.ExtractProfileFromURL(ctx, hit.URL)
		switch status {
		case StatusSkipped:
			stats.Skipped++
			continue
		case StatusInsufficient:
			stats.Failed++
			continue
		}

		if m.store != nil {
			if err := m.store.Upsert(ctx, *record); err != nil {
				fmt.Printf("Warning: failed to save profile %s: %v\n", record.ProfileURL, err)
				stats.Failed++
				continue
			}
		}
		stats.Saved++
		saved = append(saved, *record)
	}

	if m.verbose {
		m.printer.PrintRunSummary(stats.RunID, stats.Processed, stats.Saved, stats.Skipped, stats.Failed)
	}
	return saved, stats
}

// MineProfiles runs the full flow: search, then process every kept hit.
func (m *Miner) MineProfiles(ctx context.Context, keywords string, limit int) ([]types.ProfileRecord, RunStats, error) {
	hits, err := m.SearchProfiles(ctx, keywords, limit)
	if err != nil {
		return nil, RunStats{}, err
	}
	records, stats := m.ProcessProfiles(ctx, hits)
	return records, stats, nil
}

// Contact resolves contact details without touching the store.
func (m *Miner) Contact(ctx context.Context, name, company string) (types.ContactOverlay, error) {
	if m.enricher == nil {
		return types.ContactOverlay{}, fmt.Errorf("contact enrichment is not configured (set APOLLO_API_KEY)")
	}
	return m.enricher.Match(ctx, name, company), nil
}

// ExportToCSV writes the stored collection to filename under the data
// directory; an empty filename picks the dated default. Returns the path
// written and the row count.
func (m *Miner) ExportToCSV(ctx context.Context, filename string) (string, int, error) {
	if m.store == nil {
		return "", 0, fmt.Errorf("no store configured")
	}
	if filename == "" {
		filename = export.DefaultFileName(time.Now())
	}
	path := filename
	if m.dataDir != "" {
		path = filepath.Join(m.dataDir, filename)
	}
	count, err := export.WriteCSV(ctx, m.store, path)
	if err != nil {
		return "", 0, err
	}
	return path, count, nil
}
