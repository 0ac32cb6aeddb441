package validation

import (
	"strings"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// ValidateTitle checks that a title is present and within bounds.
func ValidateTitle(title string) bool {
	title = strings.TrimSpace(title)
	return len(title) > 0 && len(title) <= MaxTitleLength
}

// ValidateDescription checks description length; empty is allowed.
func ValidateDescription(description string) bool {
	return len(description) <= MaxDescriptionLength
}

// SanitizeString removes potentially harmful characters
func SanitizeString(input string) string {
	// Basic sanitization
	input = strings.TrimSpace(input)
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
