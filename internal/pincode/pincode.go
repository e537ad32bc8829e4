// =============================================================================
// Post File Merger - Pincode Normalizer
// =============================================================================
//
// This module cleans and extracts 6-digit Indian postal codes from arbitrary
// text. Pincodes are treated as opaque fixed-width digit strings throughout
// the application; they are never parsed as integers, so leading zeros are
// preserved.
//
// =============================================================================

package pincode

import (
	"regexp"
	"strings"
)

var (
	nonDigits = regexp.MustCompile(`\D`)

	// Standalone 6-digit run bounded by word boundaries.
	standalone = regexp.MustCompile(`\b\d{6}\b`)

	// 3+3 digits with an optional space or hyphen separator
	// (e.g. "110 001" or "110-001").
	split = regexp.MustCompile(`\b\d{3}[\s-]?\d{3}\b`)
)

// Clean strips all non-digit characters from raw and returns the digit string
// only if exactly 6 digits remain; otherwise it returns the empty string.
// Missing or blank input yields the empty string. Clean is idempotent.
func Clean(raw string) string {
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(raw), "")
	if len(digits) == 6 {
		return digits
	}
	return ""
}

// ExtractFromText searches free text for a pincode. A standalone 6-digit run
// takes priority; failing that, a 3-digit + separator + 3-digit pattern is
// accepted with the separator collapsed. Returns the empty string when
// neither form matches.
func ExtractFromText(text string) string {
	if text == "" {
		return ""
	}

	if m := standalone.FindString(text); m != "" {
		return m
	}

	if m := split.FindString(text); m != "" {
		m = strings.ReplaceAll(m, " ", "")
		m = strings.ReplaceAll(m, "-", "")
		return m
	}

	return ""
}
