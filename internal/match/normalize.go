// Package match implements title normalization and fuzzy cross-catalog
// matching. Titles from Plex and Jellyfin for the same release differ in
// case, punctuation and year qualifiers; everything here reduces them to
// a comparable form before scoring.
package match

import (
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexes for normalization performance
var (
	trailingYearRegex  = regexp.MustCompile(`\s*\((\d{4})\)\s*$`)
	ampersandRegex     = regexp.MustCompile(`\s+(&|and)\s+`)
	nonAlphanumRegex   = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	collapseSpaceRegex = regexp.MustCompile(`\s+`)
)

// NormalizedTitle is the comparable form of a raw title. Derived on
// demand, never persisted.
type NormalizedTitle struct {
	Base string
	// Year extracted from a trailing "(YYYY)" qualifier, 0 when absent.
	Year int
}

// Normalize reduces a raw title to lowercase alphanumeric words and
// extracts a trailing parenthesized year if present. Total: unparseable
// input yields the cleaned string with Year 0.
func Normalize(raw string) NormalizedTitle {
	title := raw
	year := 0

	if m := trailingYearRegex.FindStringSubmatch(title); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			year = y
		}
		title = trailingYearRegex.ReplaceAllString(title, "")
	}

	title = strings.ToLower(title)
	// "Fast & Furious" and "Fast and Furious" should compare equal
	title = ampersandRegex.ReplaceAllString(title, " and ")
	title = nonAlphanumRegex.ReplaceAllString(title, " ")
	title = collapseSpaceRegex.ReplaceAllString(title, " ")

	return NormalizedTitle{
		Base: strings.TrimSpace(title),
		Year: year,
	}
}
