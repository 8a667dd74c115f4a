// Package queries turns one seed search query into a small set of
// diversified alternatives, LLM-backed with a deterministic fallback.
package queries

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/jonathan/profile-miner/internal/llm"
	"github.com/jonathan/profile-miner/internal/prompts"
)

// baseQuery scopes every generated query to public profile pages.
const baseQuery = "site:linkedin.com/in"

// Fixed vocabularies for the deterministic fallback generator. Indexed by
// i mod len so the output is fully reproducible for a given (seed, count).
var (
	fallbackLocations = []string{"US", "UK", "CA", "AU", "NY"}
	fallbackRoles     = []string{"host", "presenter", "interviewer"}
	fallbackAITerms   = []string{"AI", "Artificial Intelligence", "Machine Learning", "Deep Learning"}
)

// Expander generates alternative search queries for a seed query. A nil
// client means the deterministic fallback is always used.
type Expander struct {
	client llm.Client
}

// NewExpander creates an Expander. client may be nil.
func NewExpander(client llm.Client) *Expander {
	return &Expander{client: client}
}

// Expand returns count alternative queries for the seed. The LLM path is
// tried first when a client is configured; missing credentials, model
// failure, or an unparseable response all fall back to the deterministic
// generator, so Expand never returns an empty set for count > 0.
func (e *Expander) Expand(ctx context.Context, seed string, count int) []string {
	if count <= 0 {
		return nil
	}
	if e.client == nil {
		return FallbackQueries(seed, count)
	}

	template := prompts.MustGet("mining.json", "expand-queries")
	prompt := prompts.Format(template, map[string]string{
		"Query": seed,
		"Count": strconv.Itoa(count),
	})

	text, err := e.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		log.Printf("[QUERIES] expansion degraded to fallback: %v", err)
		return FallbackQueries(seed, count)
	}

	generated := llm.CleanLines(text)
	if len(generated) == 0 {
		return FallbackQueries(seed, count)
	}
	if len(generated) > count {
		generated = generated[:count]
	}
	return generated
}

// FallbackQueries deterministically generates exactly count queries by
// cycling the fixed vocabularies. It is a pure function of (seed, count).
func FallbackQueries(seed string, count int) []string {
	if count <= 0 {
		return nil
	}

	queries := make([]string, 0, count)
	podcast := strings.Contains(strings.ToLower(seed), "podcast")

	for i := 0; i < count; i++ {
		loc := fallbackLocations[i%len(fallbackLocations)]
		role := fallbackRoles[i%len(fallbackRoles)]
		aiTerm := fallbackAITerms[i%len(fallbackAITerms)]

		if podcast {
			queries = append(queries, baseQuery+" "+aiTerm+` "podcast" `+role+" loc:"+loc)
		} else {
			queries = append(queries, baseQuery+" "+seed+" "+role+" loc:"+loc)
		}
	}

	return queries
}
