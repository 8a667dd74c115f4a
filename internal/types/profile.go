// Package types provides type definitions for structured data used throughout the profile-miner system.
package types

import (
	"net/url"
	"strings"
)

// SearchHit is a single candidate result returned by a keyword search.
// Hits are ephemeral: they feed the relevance filter and the extractor
// but are never persisted.
type SearchHit struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	// SourceQuery marks where the hit came from. Empty for the primary
	// query, "additional" for hits discovered via expanded queries.
	SourceQuery string `json:"source_query,omitempty"`
}

// SourceAdditional tags hits discovered through expanded search queries.
const SourceAdditional = "additional"

// ProfileRecord is the persisted unit of extracted and enriched profile data,
// keyed by the normalized profile URL. All fields except ProfileURL are
// optional and accumulate over the record's lifecycle: extraction fills the
// biographical fields, contact enrichment overlays email/phone data, and
// summarization attaches the generated synopsis.
type ProfileRecord struct {
	ProfileURL     string `json:"profile_url"`
	Name           string `json:"name,omitempty"`
	Description    string `json:"description,omitempty"`
	Company        string `json:"company,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	Followers      string `json:"followers,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone1         string `json:"phone1,omitempty"`
	Phone2         string `json:"phone2,omitempty"`
	AboutCompany   string `json:"about_company,omitempty"`
	ProfileSummary string `json:"profile_summary,omitempty"`
}

// Sufficient reports whether the record carries the minimum data required
// for persistence. Records missing either name or company are discarded
// before they reach the store.
func (r *ProfileRecord) Sufficient() bool {
	return r != nil && r.Name != "" && r.Company != ""
}

// ContactOverlay is a transient patch of contact-related fields returned by
// the person-matching API. It is merged onto a ProfileRecord field-by-field;
// absent fields never clear existing record data.
type ContactOverlay struct {
	Email        string `json:"email,omitempty"`
	Phone1       string `json:"phone1,omitempty"`
	Phone2       string `json:"phone2,omitempty"`
	AboutCompany string `json:"about_company,omitempty"`
	JobTitle     string `json:"job_title,omitempty"`
}

// Empty reports whether the overlay carries no fields at all.
func (o ContactOverlay) Empty() bool {
	return o == ContactOverlay{}
}

// Apply merges the overlay onto the record. Only fields present in the
// overlay overwrite the record; the merge is non-destructive otherwise.
func (o ContactOverlay) Apply(r *ProfileRecord) {
	if r == nil {
		return
	}
	if o.Email != "" {
		r.Email = o.Email
	}
	if o.Phone1 != "" {
		r.Phone1 = o.Phone1
	}
	if o.Phone2 != "" {
		r.Phone2 = o.Phone2
	}
	if o.AboutCompany != "" {
		r.AboutCompany = o.AboutCompany
	}
	if o.JobTitle != "" {
		r.JobTitle = o.JobTitle
	}
}

// NormalizeProfileURL produces the canonical store key for a profile URL:
// lowercased scheme and host, https forced, trailing slash trimmed. URLs
// that fail to parse are returned lowercased so that dedup still has a
// stable key to work with.
func NormalizeProfileURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(strings.ToLower(trimmed), "/")
	}
	u.Scheme = "https"
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.Fragment = ""
	return u.String()
}
