// Package sanitize provides text sanitization for user supplied fields.
package sanitize

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// StripHTML removes HTML tags, decodes entities and strips again so that
// encoded tags do not survive.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = html.UnescapeString(result)
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text sanitizes free text such as comments and party names.
func Text(s string) string {
	return StripHTML(dropControl(s))
}

// TextPtr is a helper for optional string pointers. Blank input becomes nil.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	if result == "" {
		return nil
	}
	return &result
}

// Value cleans a raw contact value before normalization: control
// characters are dropped and runs of whitespace collapse to one space.
// Markup is left alone because it may be part of a SIP or website value.
func Value(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(dropControl(s), " "))
}

func dropControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}
