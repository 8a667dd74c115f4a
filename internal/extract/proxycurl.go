package extract

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonathan/profile-miner/internal/types"
)

// proxycurlEndpoint is the Proxycurl person-lookup endpoint.
const proxycurlEndpoint = "https://nubela.co/proxycurl/api/v2/linkedin"

// ProxycurlClient looks up profile details through the paid Proxycurl API,
// used when structured-data scraping yields nothing usable.
type ProxycurlClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewProxycurlClient creates a lookup client for the given API key.
func NewProxycurlClient(apiKey string) *ProxycurlClient {
	return &ProxycurlClient{
		apiKey:   apiKey,
		endpoint: proxycurlEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// proxycurlResponse is the subset of the lookup response we consume.
type proxycurlResponse struct {
	FullName      string `json:"full_name"`
	Headline      string `json:"headline"`
	FollowerCount int    `json:"follower_count"`
	Experiences   []struct {
		Company string `json:"company"`
		Title   string `json:"title"`
	} `json:"experiences"`
}

// Lookup fetches profile details for a URL. On any failure it returns a
// bare record holding only the URL; the caller discards it downstream as
// insufficient.
func (p *ProxycurlClient) Lookup(ctx context.Context, profileURL string) *types.ProfileRecord {
	bare := &types.ProfileRecord{ProfileURL: types.NormalizeProfileURL(profileURL)}

	params := url.Values{}
	params.Set("linkedin_profile_url", profileURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("[EXTRACT] proxycurl request setup failed for %s: %v", profileURL, err)
		return bare
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("[EXTRACT] proxycurl lookup failed for %s: %v", profileURL, err)
		return bare
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[EXTRACT] proxycurl returned status %d for %s", resp.StatusCode, profileURL)
		return bare
	}

	var parsed proxycurlResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("[EXTRACT] proxycurl response malformed for %s: %v", profileURL, err)
		return bare
	}

	record := &types.ProfileRecord{
		ProfileURL:  types.NormalizeProfileURL(profileURL),
		Name:        parsed.FullName,
		Description: parsed.Headline,
	}
	if parsed.FollowerCount > 0 {
		record.Followers = strconv.Itoa(parsed.FollowerCount)
	}
	if len(parsed.Experiences) > 0 {
		record.Company = parsed.Experiences[0].Company
		record.JobTitle = parsed.Experiences[0].Title
	}
	return record
}
