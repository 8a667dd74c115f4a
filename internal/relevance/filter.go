// Package relevance decides whether a search hit is worth extracting.
// Filtering is advisory: with no model configured, or when the model call
// fails, every hit passes. Only a model answer that is present but not
// affirmative rejects a hit.
package relevance

import (
	"context"
	"log"
	"strings"

	"github.com/jonathan/profile-miner/internal/llm"
	"github.com/jonathan/profile-miner/internal/prompts"
	"github.com/jonathan/profile-miner/internal/types"
)

// affirmative is the token the model is instructed to answer with.
const affirmative = "yes"

// Filter classifies search hits for topical relevance. A nil client means
// accept-everything mode.
type Filter struct {
	client llm.Client
}

// NewFilter creates a Filter. client may be nil.
func NewFilter(client llm.Client) *Filter {
	return &Filter{client: client}
}

// IsRelevant reports whether the hit should be extracted for the query.
// The fallback asymmetry is intentional and load-bearing: an infrastructure
// failure accepts the hit (favor recall when the model is unreachable), while
// a successful call returning anything other than an affirmative answer
// rejects it (favor precision when the model actually judged the hit).
func (f *Filter) IsRelevant(ctx context.Context, hit types.SearchHit, query string) bool {
	if f.client == nil {
		return true
	}

	template := prompts.MustGet("mining.json", "filter-profile")
	prompt := prompts.Format(template, map[string]string{
		"Query":    query,
		"Title":    hit.Title,
		"Abstract": hit.Abstract,
		"URL":      hit.URL,
	})

	answer, err := f.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("[FILTER] accepting %s on model failure: %v", hit.URL, err)
		return true
	}

	normalized := llm.NormalizeAnswer(answer)
	return normalized == affirmative || strings.HasPrefix(normalized, affirmative)
}
