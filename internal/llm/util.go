// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanLines splits a free-text model response into trimmed, non-empty lines.
// Markdown code fences and leading list markers ("1.", "-", "*") are stripped,
// since models often add them even when instructed not to.
func CleanLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		line = stripListMarker(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// stripListMarker removes a leading "N.", "N)", "-" or "*" marker.
func stripListMarker(line string) string {
	trimmed := strings.TrimLeft(line, "-* ")
	// Numeric markers: consume digits followed by '.' or ')'.
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i > 0 && i < len(trimmed) && (trimmed[i] == '.' || trimmed[i] == ')') {
		trimmed = trimmed[i+1:]
	}
	return strings.TrimSpace(trimmed)
}

// NormalizeAnswer lowercases and trims a short classification answer so it
// can be compared against an expected token.
func NormalizeAnswer(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
