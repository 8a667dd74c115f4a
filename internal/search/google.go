package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonathan/profile-miner/internal/types"
)

const (
	// defaultEndpoint is the Google Custom Search JSON API endpoint.
	defaultEndpoint = "https://www.googleapis.com/customsearch/v1"
	// pageSize is the fixed upstream page size; the API rejects num > 10.
	pageSize = 10
	// maxResults is the global cap the API enforces across pages.
	maxResults = 100
	// defaultTimeout bounds a single search request.
	defaultTimeout = 15 * time.Second
)

// GoogleClient queries the Google Custom Search JSON API, paging in
// fixed-size chunks until the requested limit, the global cap, or a short
// page (end of results) is reached.
type GoogleClient struct {
	apiKey   string
	engineID string
	endpoint string
	client   *http.Client
}

var _ Provider = (*GoogleClient)(nil)

// NewGoogleClient creates a search client for the given API key and custom
// search engine ID.
func NewGoogleClient(apiKey, engineID string) *GoogleClient {
	return &GoogleClient{
		apiKey:   apiKey,
		engineID: engineID,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

// googleResponse is the subset of the API response we consume.
type googleResponse struct {
	Items []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search collects up to limit hits for the query. Any transport or API
// failure degrades to an empty result set with a logged warning; a nil
// error and zero hits is a valid outcome callers must expect.
func (g *GoogleClient) Search(ctx context.Context, query string, limit int) ([]types.SearchHit, error) {
	if limit <= 0 {
		return []types.SearchHit{}, nil
	}
	if limit > maxResults {
		limit = maxResults
	}

	var hits []types.SearchHit
	for start := 1; start <= maxResults && len(hits) < limit; start += pageSize {
		items, err := g.page(ctx, query, start, limit-len(hits))
		if err != nil {
			log.Printf("[SEARCH] query %q degraded to %d results: %v", query, len(hits), err)
			return hits, nil
		}
		hits = append(hits, items...)
		if len(items) < pageSize {
			// Short page signals end of results.
			break
		}
	}

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// page fetches a single page of at most pageSize results starting at the
// given 1-based offset.
func (g *GoogleClient) page(ctx context.Context, query string, start, remaining int) ([]types.SearchHit, error) {
	num := pageSize
	if remaining < num {
		num = remaining
	}

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))
	params.Set("start", strconv.Itoa(start))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var parsed googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	hits := make([]types.SearchHit, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		hits = append(hits, types.SearchHit{
			URL:      item.Link,
			Title:    item.Title,
			Abstract: item.Snippet,
		})
	}
	return hits, nil
}
