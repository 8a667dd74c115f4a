package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a GoogleClient at a stub API server.
func newTestClient(serverURL string) *GoogleClient {
	c := NewGoogleClient("test-key", "test-cx")
	c.endpoint = serverURL
	return c
}

// writeItems responds with n synthetic result items offset by start.
func writeItems(w http.ResponseWriter, start, n int) {
	type item struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	}
	items := make([]item, 0, n)
	for i := 0; i < n; i++ {
		idx := start + i
		items = append(items, item{
			Link:    fmt.Sprintf("https://www.linkedin.com/in/person-%d", idx),
			Title:   fmt.Sprintf("Person %d", idx),
			Snippet: fmt.Sprintf("Abstract %d", idx),
		})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

func TestGoogleClient_Search_SinglePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "test-cx", r.URL.Query().Get("cx"))
		assert.Equal(t, "ai podcast host", r.URL.Query().Get("q"))
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		writeItems(w, start, 5)
	}))
	defer server.Close()

	hits, err := newTestClient(server.URL).Search(context.Background(), "ai podcast host", 20)
	require.NoError(t, err)
	// A short page (5 < 10) ends pagination.
	assert.Len(t, hits, 5)
	assert.Equal(t, "https://www.linkedin.com/in/person-1", hits[0].URL)
	assert.Equal(t, "Person 1", hits[0].Title)
	assert.Equal(t, "Abstract 1", hits[0].Abstract)
}

func TestGoogleClient_Search_Paginates(t *testing.T) {
	var starts []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		starts = append(starts, start)
		writeItems(w, start, 10)
	}))
	defer server.Close()

	hits, err := newTestClient(server.URL).Search(context.Background(), "q", 25)
	require.NoError(t, err)
	assert.Len(t, hits, 25)
	assert.Equal(t, []int{1, 11, 21}, starts)
}

func TestGoogleClient_Search_GlobalCap(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		writeItems(w, start, 10)
	}))
	defer server.Close()

	hits, err := newTestClient(server.URL).Search(context.Background(), "q", 500)
	require.NoError(t, err)
	assert.Len(t, hits, 100)
	assert.Equal(t, 10, requests)
}

func TestGoogleClient_Search_APIErrorDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	hits, err := newTestClient(server.URL).Search(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestGoogleClient_Search_PartialResultsOnMidwayFailure(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		writeItems(w, start, 10)
	}))
	defer server.Close()

	hits, err := newTestClient(server.URL).Search(context.Background(), "q", 30)
	require.NoError(t, err)
	// First page survives; the failed second page degrades instead of erroring.
	assert.Len(t, hits, 10)
}

func TestGoogleClient_Search_NonPositiveLimit(t *testing.T) {
	hits, err := NewGoogleClient("k", "cx").Search(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
