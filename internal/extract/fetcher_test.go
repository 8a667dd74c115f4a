package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newProxycurlTestClient points a ProxycurlClient at a stub server.
func newProxycurlTestClient(serverURL string) *ProxycurlClient {
	c := NewProxycurlClient("test-key")
	c.endpoint = serverURL
	return c
}

func TestProxycurlLookup_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "https://www.linkedin.com/in/jane", r.URL.Query().Get("linkedin_profile_url"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"full_name":      "Jane Doe",
			"headline":       "AI podcast host",
			"follower_count": 4200,
			"experiences": []map[string]string{
				{"company": "Acme Media", "title": "Host"},
				{"company": "Previous Co", "title": "Producer"},
			},
		})
	}))
	defer server.Close()

	record := newProxycurlTestClient(server.URL).Lookup(context.Background(), "https://www.linkedin.com/in/jane")
	require.NotNil(t, record)
	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "AI podcast host", record.Description)
	assert.Equal(t, "4200", record.Followers)
	assert.Equal(t, "Acme Media", record.Company, "most recent experience wins")
	assert.Equal(t, "Host", record.JobTitle)
}

func TestProxycurlLookup_FailureYieldsBareRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer server.Close()

	record := newProxycurlTestClient(server.URL).Lookup(context.Background(), "https://www.linkedin.com/in/jane")
	require.NotNil(t, record)
	assert.Equal(t, "https://www.linkedin.com/in/jane", record.ProfileURL)
	assert.Empty(t, record.Name)
	assert.Empty(t, record.Company)
	assert.False(t, record.Sufficient())
}

func TestFetcher_ScrapeSucceeds(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(personHTML))
	}))
	defer page.Close()

	fetcher := NewFetcher()
	record := fetcher.Fetch(context.Background(), page.URL+"/in/janedoe")
	require.NotNil(t, record)
	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "Acme Media", record.Company)
}

func TestFetcher_FallsBackWhenScrapeMissesCompany(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Person node without worksFor: scrape yields a record missing company.
		_, _ = w.Write([]byte(`<html><head><script type="application/ld+json">
		{"@graph": [{"@type": "Person", "name": "Jane Doe"}]}
		</script></head></html>`))
	}))
	defer page.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"full_name":   "Jane Doe",
			"experiences": []map[string]string{{"company": "Acme Media", "title": "Host"}},
		})
	}))
	defer api.Close()

	fetcher := NewFetcher(WithProxycurl(newProxycurlTestClient(api.URL)))
	record := fetcher.Fetch(context.Background(), page.URL+"/in/janedoe")
	require.NotNil(t, record)
	assert.Equal(t, "Acme Media", record.Company)
	assert.True(t, record.Sufficient())
}

func TestFetcher_FallsBackWhenScrapeFails(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer page.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"full_name":   "Jane Doe",
			"headline":    "AI podcast host",
			"experiences": []map[string]string{{"company": "Acme Media", "title": "Host"}},
		})
	}))
	defer api.Close()

	fetcher := NewFetcher(WithProxycurl(newProxycurlTestClient(api.URL)))
	record := fetcher.Fetch(context.Background(), page.URL+"/in/janedoe")
	require.NotNil(t, record)
	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "Acme Media", record.Company)
}

func TestFetcher_NoFallbackConfigured(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer page.Close()

	fetcher := NewFetcher()
	assert.Nil(t, fetcher.Fetch(context.Background(), page.URL+"/in/janedoe"))
}
