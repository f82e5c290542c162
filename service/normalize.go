package service

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize collapses every run of whitespace (spaces, tabs, newlines) to a
// single space, trims the ends and lower-cases the result. It is idempotent.
//
// Normalized text is only ever used for substring and boolean matching; field
// values are always captured from the raw text so original casing and spacing
// survive.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " ")))
}
