package types

import (
	"github.com/go-playground/validator/v10"
)

// SearchRequest represents the request to search for profiles.
type SearchRequest struct {
	Keywords string `json:"keywords" validate:"required,min=1"`
	Limit    int    `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// QueriesRequest represents the request to expand a seed query.
type QueriesRequest struct {
	Query string `json:"query" validate:"required,min=1"`
	Count int    `json:"count,omitempty" validate:"omitempty,min=1,max=10"`
}

// ExtractRequest represents the request to extract a single profile.
type ExtractRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// MineRequest represents the request to run the full search-and-extract flow.
type MineRequest struct {
	Keywords string `json:"keywords" validate:"required,min=1"`
	Limit    int    `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// ContactRequest represents the request to look up contact details.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=1"`
	Company string `json:"company" validate:"required,min=1"`
}

// ExportRequest represents the request to export stored profiles to CSV.
type ExportRequest struct {
	Filename string `json:"filename,omitempty"`
}

// Validate validates the SearchRequest using the validator.
func (r *SearchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the QueriesRequest using the validator.
func (r *QueriesRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ExtractRequest using the validator.
func (r *ExtractRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the MineRequest using the validator.
func (r *MineRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ContactRequest using the validator.
func (r *ContactRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
