// Package summary produces a short natural-language synopsis of a profile,
// LLM-backed with a deterministic composer as fallback.
package summary

import (
	"context"
	"log"
	"strings"

	"github.com/jonathan/profile-miner/internal/llm"
	"github.com/jonathan/profile-miner/internal/prompts"
)

// MaxLength is the hard cap on summary length. Longer model output is
// truncated with an ellipsis marker.
const MaxLength = 150

// Facts are the profile fields the summarizer works from.
type Facts struct {
	Name     string
	Headline string
	Company  string
	Title    string
}

// Summarizer generates profile summaries. A nil client means the
// deterministic fallback composer is always used.
type Summarizer struct {
	client llm.Client
}

// NewSummarizer creates a Summarizer. client may be nil.
func NewSummarizer(client llm.Client) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize returns a synopsis of at most MaxLength characters. Model
// failure or a missing client falls back to composing from whichever facts
// are present.
func (s *Summarizer) Summarize(ctx context.Context, facts Facts) string {
	if s.client == nil {
		return Truncate(FallbackSummary(facts))
	}

	template := prompts.MustGet("mining.json", "summarize-profile")
	prompt := prompts.Format(template, map[string]string{
		"Name":     facts.Name,
		"Headline": facts.Headline,
		"Company":  facts.Company,
		"Title":    facts.Title,
	})

	text, err := s.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		log.Printf("[SUMMARY] degraded to fallback: %v", err)
		return Truncate(FallbackSummary(facts))
	}

	return Truncate(strings.TrimSpace(text))
}

// FallbackSummary composes a summary deterministically from the available
// facts, in priority order: headline, title+company, title, company, name.
func FallbackSummary(facts Facts) string {
	switch {
	case facts.Headline != "":
		return facts.Name + ": " + facts.Headline
	case facts.Title != "" && facts.Company != "":
		return facts.Name + ": " + facts.Title + " at " + facts.Company
	case facts.Title != "":
		return facts.Name + ": " + facts.Title
	case facts.Company != "":
		return facts.Name + ": Works at " + facts.Company
	default:
		return facts.Name
	}
}

// Truncate enforces the MaxLength cap, marking truncation with an ellipsis.
// The cap counts characters, not bytes, so multi-byte text is never split
// mid-rune.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxLength {
		return text
	}
	return string(runes[:MaxLength-3]) + "..."
}
