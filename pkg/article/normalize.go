package article

import (
	"regexp"
	"strings"
)

var reWhitespace = regexp.MustCompile(`\s+`)

// CleanText collapses internal whitespace runs to single spaces, trims
// leading/trailing whitespace and drops undecodable byte sequences.
// Empty input yields the empty string; CleanText never fails.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	cleaned := reWhitespace.ReplaceAllString(strings.TrimSpace(text), " ")
	return strings.ToValidUTF8(cleaned, "")
}
