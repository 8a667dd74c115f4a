// Package enrich looks up contact-information overlays for extracted
// profiles through a person-matching API. Enrichment is best-effort: every
// failure mode returns an empty overlay and never blocks the pipeline.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/profile-miner/internal/types"
)

// apolloEndpoint is the Apollo people-match endpoint.
const apolloEndpoint = "https://api.apollo.io/api/v1/people/match"

// Enricher matches a (name, company) pair to contact details.
type Enricher struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewEnricher creates an Enricher for the given API key.
func NewEnricher(apiKey string) *Enricher {
	return &Enricher{
		apiKey:   apiKey,
		endpoint: apolloEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// matchRequest is the people-match request payload.
type matchRequest struct {
	Name                 string `json:"name"`
	OrganizationName     string `json:"organization_name"`
	RevealPersonalEmails bool   `json:"reveal_personal_emails"`
	RevealPhoneNumber    bool   `json:"reveal_phone_number"`
}

// matchResponse is the subset of the people-match response we consume.
type matchResponse struct {
	Person struct {
		Email        string `json:"email"`
		Title        string `json:"title"`
		Organization struct {
			PrimaryPhone struct {
				Number string `json:"number"`
			} `json:"primary_phone"`
			SanitizedPhone   string `json:"sanitized_phone"`
			ShortDescription string `json:"short_description"`
		} `json:"organization"`
	} `json:"person"`
}

// Match looks up contact details for a person at a company. Any transport,
// API, or decoding failure degrades to an empty overlay.
func (e *Enricher) Match(ctx context.Context, name, company string) types.ContactOverlay {
	payload, err := json.Marshal(matchRequest{
		Name:                 name,
		OrganizationName:     company,
		RevealPersonalEmails: true,
		RevealPhoneNumber:    false,
	})
	if err != nil {
		return types.ContactOverlay{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		log.Printf("[ENRICH] request setup failed for %q: %v", name, err)
		return types.ContactOverlay{}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		log.Printf("[ENRICH] match failed for %q: %v", name, err)
		return types.ContactOverlay{}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[ENRICH] match returned status %d for %q", resp.StatusCode, name)
		return types.ContactOverlay{}
	}

	var parsed matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("[ENRICH] match response malformed for %q: %v", name, err)
		return types.ContactOverlay{}
	}

	return types.ContactOverlay{
		Email:        parsed.Person.Email,
		Phone1:       parsed.Person.Organization.PrimaryPhone.Number,
		Phone2:       parsed.Person.Organization.SanitizedPhone,
		AboutCompany: parsed.Person.Organization.ShortDescription,
		JobTitle:     parsed.Person.Title,
	}
}
