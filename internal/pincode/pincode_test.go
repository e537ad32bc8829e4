package pincode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain six digits", "110001", "110001"},
		{"hyphenated", "110-001", "110001"},
		{"spaced", "110 001", "110001"},
		{"surrounding whitespace", "  560038  ", "560038"},
		{"leading zeros preserved", "010001", "010001"},
		{"five digits", "11001", ""},
		{"seven digits", "1100012", ""},
		{"letters only", "DELHI", ""},
		{"digits inside text", "PIN: 400-001", "400001"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

// Clean must be idempotent: cleaning a cleaned value changes nothing.
func TestCleanIdempotent(t *testing.T) {
	inputs := []string{"110001", "110-001", "11001", "1100012", "", "abc 123 456"}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "Clean(Clean(%q))", in)
	}
}

func TestExtractFromText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"standalone run", "Flat 4B, MG Road, Bangalore 560001", "560001"},
		{"spaced form", "Address near 110 001 Delhi", "110001"},
		{"hyphenated form", "Mumbai 400-001 West", "400001"},
		{"standalone beats spaced", "560001 and also 110 001", "560001"},
		{"seven digit run rejected", "phone 9876543 listed", ""},
		{"five digit run rejected", "PO 11001 area", ""},
		{"no digits", "Connaught Place, New Delhi", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFromText(tt.in))
		})
	}
}

// The standalone pattern wins even when a spaced candidate appears first in
// the text: priority is by pattern, not by position.
func TestExtractFromTextPatternPriority(t *testing.T) {
	got := ExtractFromText("110 001 then 560038")
	assert.Equal(t, "560038", got)
}
