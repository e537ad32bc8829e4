// =============================================================================
// Post File Merger - Sender Resolver
// =============================================================================
//
// This module loads the sender metadata workbook and associates input files
// with a sender by fuzzy filename containment. Each sender row carries a
// "File Name Contain" key; an input file matches a sender when that key
// contains the file's truncated base name, case-insensitively.
//
// =============================================================================

package sender

import (
	"fmt"
	"strings"

	"github.com/postaltools/postmerge/internal/config"
	"github.com/postaltools/postmerge/internal/tabular"
)

// Profile is one sender row from the sender workbook.
type Profile struct {
	FileNameKey string
	City        string
	Pincode     string
	Name        string
	ADD1        string
	ADD2        string
	ADD3        string
}

// Load reads the sender workbook. An unreadable workbook is non-fatal: the
// failure is logged and an empty profile list is returned, in which case no
// input file will resolve a sender.
func Load(path string, log func(string)) []Profile {
	table, _, err := tabular.ReadWorkbook(path)
	if err != nil {
		log(fmt.Sprintf("Error loading sender details: %v", err))
		return nil
	}

	profiles := make([]Profile, 0, table.Len())
	for _, row := range table.Rows {
		profiles = append(profiles, Profile{
			FileNameKey: row[config.SenderKeyColumn],
			City:        row["SenderCity"],
			Pincode:     row["SenderPincode"],
			Name:        row["SenderName"],
			ADD1:        row["SenderADD1"],
			ADD2:        row["SenderADD2"],
			ADD3:        row["SenderADD3"],
		})
	}

	log(fmt.Sprintf("Successfully loaded sender details with %d records", len(profiles)))
	return profiles
}

// LookupKey derives the sender lookup key from an input filename: the name
// is truncated at the first "-", then at the first ".", then trimmed.
// "ICICI-March.xlsx" and "ICICI.txt" both yield "ICICI".
func LookupKey(filename string) string {
	key := filename
	if i := strings.Index(key, "-"); i >= 0 {
		key = key[:i]
	}
	if i := strings.Index(key, "."); i >= 0 {
		key = key[:i]
	}
	return strings.TrimSpace(key)
}

// Find returns the first profile whose key field contains the filename's
// lookup key as a case-insensitive substring. The boolean is false when no
// profile matches; the caller decides how to handle the miss.
func Find(profiles []Profile, filename string) (Profile, bool) {
	key := strings.ToLower(LookupKey(filename))
	if key == "" {
		return Profile{}, false
	}
	for _, p := range profiles {
		if strings.Contains(strings.ToLower(p.FileNameKey), key) {
			return p, true
		}
	}
	return Profile{}, false
}
