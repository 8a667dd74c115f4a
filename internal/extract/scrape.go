// Package extract resolves a candidate profile URL into a structured
// ProfileRecord, trying embedded structured-data scraping first and a paid
// lookup API as fallback.
package extract

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/profile-miner/internal/fetch"
	"github.com/jonathan/profile-miner/internal/types"
)

// ldJSONSelector locates the embedded linked-data block.
const ldJSONSelector = `script[type="application/ld+json"]`

// ldDocument is the subset of the JSON-LD document we consume.
type ldDocument struct {
	Graph []ldNode `json:"@graph"`
}

// ldNode is one node of the linked-data graph. Fields that vary in shape
// across pages are decoded loosely.
type ldNode struct {
	Type        any    `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	JobTitle    string `json:"jobTitle"`
	WorksFor    []struct {
		Name string `json:"name"`
	} `json:"worksFor"`
	InteractionStatistic struct {
		UserInteractionCount json.Number `json:"userInteractionCount"`
	} `json:"interactionStatistic"`
}

// isPerson reports whether the node is tagged as a Person entity.
func (n *ldNode) isPerson() bool {
	switch v := n.Type.(type) {
	case string:
		return v == "Person"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Person" {
				return true
			}
		}
	}
	return false
}

// CanonicalURL rewrites a profile URL into the https://www.-prefixed form
// the public page is served under: regional and mobile subdomains (the
// leftmost host label) are replaced with www.
func CanonicalURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return raw
	}
	// Literal addresses and explicit ports are left alone; the www rewrite
	// only applies to named hosts.
	if u.Port() != "" || net.ParseIP(u.Hostname()) != nil {
		return raw
	}
	u.Scheme = "https"
	host := strings.ToLower(u.Host)
	if !strings.HasPrefix(host, "www.") {
		if idx := strings.Index(host, "."); idx >= 0 {
			host = "www." + host[idx+1:]
		} else {
			host = "www." + host
		}
	}
	u.Host = host
	return u.String()
}

// scrape fetches the canonical page and maps its first Person node into a
// ProfileRecord. Every failure mode (network, non-200, missing or malformed
// ld+json, no Person node) yields a nil record and nil error: this stage
// degrades silently so the caller can try the API fallback.
func (f *Fetcher) scrape(ctx context.Context, profileURL string) *types.ProfileRecord {
	pageURL := CanonicalURL(profileURL)

	result, err := fetch.Page(ctx, pageURL, f.fetchOpts)
	if err != nil {
		log.Printf("[EXTRACT] scrape failed for %s: %v", pageURL, err)
		return nil
	}

	html := result.HTML
	if !strings.Contains(html, "ld+json") && f.useBrowser {
		rendered, err := fetch.BrowserSimple(ctx, pageURL, f.verbose)
		if err != nil {
			log.Printf("[EXTRACT] browser render failed for %s: %v", pageURL, err)
			return nil
		}
		html = rendered
	}

	return parseProfileHTML(html, profileURL)
}

// parseProfileHTML extracts the first Person node from the first ld+json
// block in the document.
func parseProfileHTML(html, profileURL string) *types.ProfileRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	script := doc.Find(ldJSONSelector).First()
	if script.Length() == 0 {
		return nil
	}

	var parsed ldDocument
	if err := json.Unmarshal([]byte(script.Text()), &parsed); err != nil {
		return nil
	}

	for i := range parsed.Graph {
		node := &parsed.Graph[i]
		if !node.isPerson() {
			continue
		}

		record := &types.ProfileRecord{
			ProfileURL:  types.NormalizeProfileURL(profileURL),
			Name:        node.Name,
			Description: node.Description,
			JobTitle:    node.JobTitle,
		}
		if len(node.WorksFor) > 0 {
			record.Company = node.WorksFor[0].Name
		}
		if count := node.InteractionStatistic.UserInteractionCount.String(); count != "" {
			record.Followers = count
		}
		return record
	}

	return nil
}
