// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/profile-miner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// clip shortens s to at most max characters, marking the cut with an
// ellipsis. It counts runes so multi-byte text is never split mid-character.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintQueries outputs the expanded query set before the searches run.
func (p *Printer) PrintQueries(seed string, queries []string) {
	if len(queries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Seed: %s\n\n", seed))
	for i, q := range queries {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, clip(q, 50)))
	}

	p.printBox("EXPANDED QUERIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSearchHits outputs the deduplicated, filtered hit list.
func (p *Printer) PrintSearchHits(hits []types.SearchHit) {
	if len(hits) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total hits kept: %d\n\n", len(hits)))

	count := min(len(hits), maxItemsToShow)
	for i := 0; i < count; i++ {
		hit := hits[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, clip(hit.Title, 50)))
		sb.WriteString(fmt.Sprintf("    %s\n", clip(hit.URL, 48)))
		if hit.SourceQuery != "" {
			sb.WriteString(fmt.Sprintf("    via: %s\n", hit.SourceQuery))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(hits) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more hits", len(hits)-maxItemsToShow))
	}

	p.printBox("SEARCH HITS", sb.String())
}

// PrintProfile outputs one extracted profile record.
func (p *Printer) PrintProfile(record *types.ProfileRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", record.Name))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", record.Company))
	if record.JobTitle != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", record.JobTitle))
	}
	if record.Followers != "" {
		sb.WriteString(fmt.Sprintf("Followers: %s\n", record.Followers))
	}
	if record.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", record.Email))
	}
	if record.ProfileSummary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", clip(record.ProfileSummary, 50)))
	}
	sb.WriteString(fmt.Sprintf("URL:      %s", record.ProfileURL))

	p.printBox("EXTRACTED PROFILE", sb.String())
}

// PrintRunSummary outputs the per-run counters after a mining pass.
func (p *Printer) PrintRunSummary(runID string, processed, saved, skipped, failed int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n\n", runID))
	sb.WriteString(fmt.Sprintf("Processed: %d\n", processed))
	sb.WriteString(fmt.Sprintf("Saved:     %d\n", saved))
	sb.WriteString(fmt.Sprintf("Skipped:   %d\n", skipped))
	sb.WriteString(fmt.Sprintf("Failed:    %d", failed))

	p.printBox("MINING RUN SUMMARY", sb.String())
}
