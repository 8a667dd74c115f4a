package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-miner/internal/pipeline"
	"github.com/jonathan/profile-miner/internal/store"
	"github.com/jonathan/profile-miner/internal/types"
)

type stubProvider struct {
	hits map[string][]types.SearchHit
}

func (p *stubProvider) Search(_ context.Context, query string, limit int) ([]types.SearchHit, error) {
	hits := p.hits[query]
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

type stubFetcher struct {
	records map[string]*types.ProfileRecord
}

func (f *stubFetcher) Fetch(_ context.Context, profileURL string) *types.ProfileRecord {
	return f.records[profileURL]
}

type stubEnricher struct {
	overlay types.ContactOverlay
}

func (e *stubEnricher) Match(_ context.Context, _, _ string) types.ContactOverlay {
	return e.overlay
}

func newTestServer(t *testing.T, opts pipeline.Options) (*Server, store.Store) {
	t.Helper()
	if opts.Store == nil {
		fs, err := store.OpenFile(t.TempDir())
		require.NoError(t, err)
		opts.Store = fs
	}
	if opts.Delay == 0 {
		opts.Delay = 1
	}

	miner := pipeline.NewMiner(opts, nil)
	s, err := New(Config{Port: 0, Miner: miner, Store: opts.Store})
	require.NoError(t, err)
	return s, opts.Store
}

func postJSON(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t, pipeline.Options{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestSearchEndpoint_MissingKeywords(t *testing.T) {
	s, _ := newTestServer(t, pipeline.Options{Search: &stubProvider{}})

	w := postJSON(t, s, "/search", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEndpoint_NotConfigured(t *testing.T) {
	s, _ := newTestServer(t, pipeline.Options{})

	w := postJSON(t, s, "/search", `{"keywords": "AI podcast host"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSearchEndpoint_ReturnsHits(t *testing.T) {
	provider := &stubProvider{hits: map[string][]types.SearchHit{
		`site:linkedin.com/in "AI podcast host"`: {
			{URL: "https://www.linkedin.com/in/jane", Title: "Jane Doe"},
		},
	}}
	s, _ := newTestServer(t, pipeline.Options{Search: provider})

	w := postJSON(t, s, "/search", `{"keywords": "AI podcast host", "limit": 5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Hits, 1)
	assert.Equal(t, "https://www.linkedin.com/in/jane", resp.Hits[0].URL)
}

func TestQueriesEndpoint(t *testing.T) {
	s, _ := newTestServer(t, pipeline.Options{})

	w := postJSON(t, s, "/queries", `{"query": "AI podcast host"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp QueriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Count)
	assert.Len(t, resp.Queries, 3)
}

func TestExtractEndpoint_InvalidURL(t *testing.T) {
	s, _ := newTestServer(t, pipeline.Options{})

	w := postJSON(t, s, "/extract", `{"url": "not a url"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractEndpoint_SavesProfile(t *testing.T) {
	fetcher := &stubFetcher{records: map[string]*types.ProfileRecord{
		"https://www.linkedin.com/in/jane": {
			ProfileURL: "https://www.linkedin.com/in/jane",
			Name:       "Jane Doe",
			Company:    "Acme Media",
		},
	}}
	s, st := newTestServer(t, pipeline.Options{Fetcher: fetcher})

	w := postJSON(t, s, "/extract", `{"url": "https://www.linkedin.com/in/jane"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, string(pipeline.StatusExtracted), resp.Status)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Jane Doe", resp.Profile.Name)

	assert.True(t, st.Exists(context.Background(), "https://www.linkedin.com/in/jane"))
}

func TestExtractEndpoint_SkipsStored(t *testing.T) {
	fs, err := store.OpenFile(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, fs.Upsert(context.Background(), types.ProfileRecord{
		ProfileURL: "https://www.linkedin.com/in/jane",
		Name:       "Jane Doe",
		Company:    "Acme",
	}))

	s, _ := newTestServer(t, pipeline.Options{Store: fs, Fetcher: &stubFetcher{}})

	w := postJSON(t, s, "/extract", `{"url": "https://www.linkedin.com/in/jane"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, string(pipeline.StatusSkipped), resp.Status)
	assert.Nil(t, resp.Profile)
}

func TestExtractEndpoint_Insufficient(t *testing.T) {
	s, _ := newTestServer(t, pipeline.Options{Fetcher: &stubFetcher{}})

	w := postJSON(t, s, "/extract", `{"url": "https://www.linkedin.com/in/nobody"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, string(pipeline.StatusInsufficient), resp.Status)
	assert.NotEmpty(t, resp.Message)
}

func TestContactEndpoint_NotConfigured(t *testing.T) {
	s, _ := newTestServer(t, pipeline.Options{})

	w := postJSON(t, s, "/contact", `{"name": "Jane Doe", "company": "Acme"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "not configured")
}

func TestContactEndpoint_ReturnsOverlay(t *testing.T) {
	enricher := &stubEnricher{overlay: types.ContactOverlay{Email: "jane@example.com"}}
	s, _ := newTestServer(t, pipeline.Options{Enricher: enricher})

	w := postJSON(t, s, "/contact", `{"name": "Jane Doe", "company": "Acme"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Contact)
	assert.Equal(t, "jane@example.com", resp.Contact.Email)
}

func TestProfilesEndpoints_ListAndClear(t *testing.T) {
	fs, err := store.OpenFile(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, fs.Upsert(context.Background(), types.ProfileRecord{
		ProfileURL: "https://www.linkedin.com/in/jane",
		Name:       "Jane Doe",
		Company:    "Acme",
	}))

	s, _ := newTestServer(t, pipeline.Options{Store: fs})

	req := httptest.NewRequest(http.MethodGet, "/profiles", nil)
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp ProfilesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Equal(t, 1, listResp.Count)

	req = httptest.NewRequest(http.MethodDelete, "/profiles", nil)
	w = httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var clearResp ClearResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clearResp))
	assert.True(t, clearResp.Success)
	assert.Equal(t, 1, clearResp.Removed)

	all, err := fs.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExportEndpoint(t *testing.T) {
	dir := t.TempDir()
	fs, err := store.OpenFile(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Upsert(context.Background(), types.ProfileRecord{
		ProfileURL: "https://www.linkedin.com/in/jane",
		Name:       "Jane Doe",
		Company:    "Acme",
	}))

	s, _ := newTestServer(t, pipeline.Options{Store: fs, DataDir: dir})

	w := postJSON(t, s, "/export", `{"filename": "out.csv"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Rows)
	assert.Contains(t, resp.Path, "out.csv")
}

func TestMineEndpoint(t *testing.T) {
	provider := &stubProvider{hits: map[string][]types.SearchHit{
		`site:linkedin.com/in "AI podcast host"`: {
			{URL: "https://www.linkedin.com/in/jane", Title: "Jane Doe"},
		},
	}}
	fetcher := &stubFetcher{records: map[string]*types.ProfileRecord{
		"https://www.linkedin.com/in/jane": {
			ProfileURL: "https://www.linkedin.com/in/jane",
			Name:       "Jane Doe",
			Company:    "Acme Media",
		},
	}}
	s, st := newTestServer(t, pipeline.Options{Search: provider, Fetcher: fetcher})

	w := postJSON(t, s, "/mine", `{"keywords": "AI podcast host", "limit": 5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp MineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Stats.Saved)
	require.Len(t, resp.Profiles, 1)

	assert.True(t, st.Exists(context.Background(), "https://www.linkedin.com/in/jane"))
}
