package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/profile-miner/internal/pipeline"
	"github.com/jonathan/profile-miner/internal/types"
)

// defaultSearchLimit applies when a request leaves limit unset.
const defaultSearchLimit = 10

// defaultQueryCount applies when a request leaves count unset.
const defaultQueryCount = 3

// SearchResponse represents the response for /search
type SearchResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Hits    []types.SearchHit `json:"hits"`
}

// QueriesResponse represents the response for /queries
type QueriesResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Queries []string `json:"queries"`
}

// ExtractResponse represents the response for /extract
type ExtractResponse struct {
	Success bool                 `json:"success"`
	Status  string               `json:"status"`
	Profile *types.ProfileRecord `json:"profile,omitempty"`
	Message string               `json:"message,omitempty"`
}

// MineResponse represents the response for /mine
type MineResponse struct {
	Success  bool                  `json:"success"`
	Stats    pipeline.RunStats     `json:"stats"`
	Profiles []types.ProfileRecord `json:"profiles"`
}

// ContactResponse represents the response for /contact
type ContactResponse struct {
	Success bool                  `json:"success"`
	Contact *types.ContactOverlay `json:"contact,omitempty"`
	Message string                `json:"message,omitempty"`
}

// ProfilesResponse represents the response for GET /profiles
type ProfilesResponse struct {
	Success  bool                  `json:"success"`
	Count    int                   `json:"count"`
	Profiles []types.ProfileRecord `json:"profiles"`
}

// ClearResponse represents the response for DELETE /profiles
type ClearResponse struct {
	Success bool `json:"success"`
	Removed int  `json:"removed"`
}

// ExportResponse represents the response for /export
type ExportResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
	Rows    int    `json:"rows"`
}

// handleSearch searches for profiles without extracting them
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req types.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultSearchLimit
	}

	hits, err := s.miner.SearchProfiles(r.Context(), req.Keywords, req.Limit)
	if err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if hits == nil {
		hits = []types.SearchHit{}
	}

	s.jsonResponse(w, http.StatusOK, SearchResponse{
		Success: true,
		Count:   len(hits),
		Hits:    hits,
	})
}

// handleQueries expands a seed query into alternatives
func (s *Server) handleQueries(w http.ResponseWriter, r *http.Request) {
	var req types.QueriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if req.Count == 0 {
		req.Count = defaultQueryCount
	}

	queries := s.miner.ExpandQueries(r.Context(), req.Query, req.Count)

	s.jsonResponse(w, http.StatusOK, QueriesResponse{
		Success: true,
		Count:   len(queries),
		Queries: queries,
	})
}

// handleExtract extracts a single profile by URL and persists it
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	status, record := s.miner.ExtractProfileFromURL(r.Context(), req.URL)
	resp := ExtractResponse{Status: string(status)}

	switch status {
	case pipeline.StatusSkipped:
		resp.Success = true
		resp.Message = "Profile already extracted"
	case pipeline.StatusInsufficient:
		resp.Message = "Could not extract enough profile data"
	case pipeline.StatusExtracted:
		if err := s.store.Upsert(r.Context(), *record); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to save profile: "+err.Error())
			return
		}
		resp.Success = true
		resp.Profile = record
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleMine runs the full search-and-extract flow
func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	var req types.MineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultSearchLimit
	}

	records, stats, err := s.miner.MineProfiles(r.Context(), req.Keywords, req.Limit)
	if err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if records == nil {
		records = []types.ProfileRecord{}
	}

	s.jsonResponse(w, http.StatusOK, MineResponse{
		Success:  true,
		Stats:    stats,
		Profiles: records,
	})
}

// handleContact looks up contact details for a person at a company
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req types.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	overlay, err := s.miner.Contact(r.Context(), req.Name, req.Company)
	if err != nil {
		if strings.Contains(err.Error(), "not configured") {
			s.jsonResponse(w, http.StatusOK, ContactResponse{
				Success: false,
				Message: err.Error(),
			})
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ContactResponse{
		Success: true,
		Contact: &overlay,
	})
}

// handleListProfiles returns every stored profile
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.All(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to read profiles: "+err.Error())
		return
	}
	if records == nil {
		records = []types.ProfileRecord{}
	}

	s.jsonResponse(w, http.StatusOK, ProfilesResponse{
		Success:  true,
		Count:    len(records),
		Profiles: records,
	})
}

// handleClearProfiles removes every stored profile
func (s *Server) handleClearProfiles(w http.ResponseWriter, r *http.Request) {
	removed, err := s.store.Clear(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to clear profiles: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ClearResponse{
		Success: true,
		Removed: removed,
	})
}

// handleExport writes the stored profiles to a CSV file
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req types.ExportRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	path, rows, err := s.miner.ExportToCSV(r.Context(), req.Filename)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Export failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ExportResponse{
		Success: true,
		Path:    path,
		Rows:    rows,
	})
}
