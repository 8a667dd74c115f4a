package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileRecord_Sufficient(t *testing.T) {
	tests := []struct {
		name     string
		record   *ProfileRecord
		expected bool
	}{
		{"Name and company", &ProfileRecord{Name: "Ada Lovelace", Company: "Analytical Engines"}, true},
		{"Missing company", &ProfileRecord{Name: "Ada Lovelace"}, false},
		{"Missing name", &ProfileRecord{Company: "Analytical Engines"}, false},
		{"URL only", &ProfileRecord{ProfileURL: "https://www.linkedin.com/in/ada"}, false},
		{"Nil record", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.Sufficient())
		})
	}
}

func TestContactOverlay_Apply(t *testing.T) {
	record := &ProfileRecord{
		ProfileURL: "https://www.linkedin.com/in/ada",
		Name:       "Ada Lovelace",
		Company:    "Analytical Engines",
		JobTitle:   "Engineer",
		Email:      "old@example.com",
	}

	overlay := ContactOverlay{
		Email:        "ada@example.com",
		Phone1:       "+1-555-0100",
		AboutCompany: "Builds analytical engines.",
	}
	overlay.Apply(record)

	assert.Equal(t, "ada@example.com", record.Email)
	assert.Equal(t, "+1-555-0100", record.Phone1)
	assert.Equal(t, "Builds analytical engines.", record.AboutCompany)
	// Absent overlay fields must not clear existing data.
	assert.Equal(t, "Engineer", record.JobTitle)
	assert.Empty(t, record.Phone2)
}

func TestContactOverlay_ApplyEmptyIsNoop(t *testing.T) {
	record := &ProfileRecord{Name: "Ada Lovelace", Email: "ada@example.com"}
	ContactOverlay{}.Apply(record)
	assert.Equal(t, "ada@example.com", record.Email)
	assert.Equal(t, "Ada Lovelace", record.Name)
}

func TestContactOverlay_Empty(t *testing.T) {
	assert.True(t, ContactOverlay{}.Empty())
	assert.False(t, ContactOverlay{Email: "a@b.c"}.Empty())
}

func TestNormalizeProfileURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"Already canonical", "https://www.linkedin.com/in/ada", "https://www.linkedin.com/in/ada"},
		{"HTTP scheme", "http://www.linkedin.com/in/ada", "https://www.linkedin.com/in/ada"},
		{"Uppercase host", "https://WWW.LinkedIn.com/in/ada", "https://www.linkedin.com/in/ada"},
		{"Trailing slash", "https://www.linkedin.com/in/ada/", "https://www.linkedin.com/in/ada"},
		{"Fragment dropped", "https://www.linkedin.com/in/ada#about", "https://www.linkedin.com/in/ada"},
		{"Surrounding whitespace", "  https://www.linkedin.com/in/ada ", "https://www.linkedin.com/in/ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeProfileURL(tt.url))
		})
	}
}

func TestNormalizeProfileURL_Stable(t *testing.T) {
	variants := []string{
		"https://www.linkedin.com/in/ada",
		"http://www.linkedin.com/in/ada/",
		"https://WWW.LINKEDIN.COM/in/ada",
	}
	for _, v := range variants {
		assert.Equal(t, "https://www.linkedin.com/in/ada", NormalizeProfileURL(v))
	}
}
