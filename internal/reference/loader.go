// =============================================================================
// Post File Merger - Pincode Reference Table
// =============================================================================
//
// This module loads the pincode->city reference workbook. The workbook comes
// from an external postal dataset and its shape drifts between releases, so
// loading is defensive at every step:
//
//   SHEET SELECTION: the preferred sheet is tried first, then the first
//   sheet of the workbook. Both attempts are logged.
//
//   COLUMN IDENTIFICATION cascades through three strategies:
//     1. exact case-insensitive match on "PINCODE" / "CITY"
//     2. substring match (header contains "PIN" / "CITY")
//     3. positional fallback: first column is pincode, second is city
//
//   ROW FILTERING: pincodes are cleaned to 6-digit strings and cities are
//   trimmed and uppercased; rows without a valid pincode are dropped.
//
// Loading never returns an error. Any failure yields an empty table, which
// the pipeline treats as fatal before any file is processed.
//
// =============================================================================

package reference

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/postaltools/postmerge/internal/pincode"
)

// Entry is one pincode->city row. Pincode always has exactly 6 digits and
// City is trimmed uppercase.
type Entry struct {
	Pincode string
	City    string
}

// Table is the loaded reference data. Physical row order is preserved;
// duplicate pincodes are permitted and lookup returns the first occurrence.
// The table is immutable after Load.
type Table struct {
	Entries []Entry

	// first maps each pincode to the index of its first occurrence.
	first map[string]int
}

// Len returns the number of valid entries.
func (t *Table) Len() int {
	return len(t.Entries)
}

// Empty reports whether the table holds no entries.
func (t *Table) Empty() bool {
	return len(t.Entries) == 0
}

// Lookup returns the city of the first entry carrying the given pincode.
func (t *Table) Lookup(pin string) (string, bool) {
	if i, ok := t.first[pin]; ok {
		return t.Entries[i].City, true
	}
	return "", false
}

// New builds a table from entries, keeping first-occurrence lookup semantics.
// Exposed for tests; production code goes through Load.
func New(entries []Entry) *Table {
	t := &Table{Entries: entries, first: make(map[string]int, len(entries))}
	for i, e := range entries {
		if _, seen := t.first[e.Pincode]; !seen {
			t.first[e.Pincode] = i
		}
	}
	return t
}

// Load reads the reference workbook. preferredSheet is tried first, then the
// workbook's first sheet. Every failure path logs its reason and returns an
// empty table.
func Load(path, preferredSheet string, log func(string)) *Table {
	log(fmt.Sprintf("Loading PIN database from: %s", path))

	f, err := excelize.OpenFile(path)
	if err != nil {
		log(fmt.Sprintf("Error loading PIN database: %v", err))
		return New(nil)
	}
	defer f.Close()

	rows, err := f.GetRows(preferredSheet)
	if err == nil {
		log(fmt.Sprintf("Successfully loaded %s sheet from %s", preferredSheet, path))
	} else {
		log(fmt.Sprintf("%s sheet not found: %v", preferredSheet, err))
		log("Trying to read the first sheet instead...")

		sheetName := f.GetSheetName(0)
		if sheetName == "" {
			log("Error loading PIN database: workbook has no sheets")
			return New(nil)
		}
		rows, err = f.GetRows(sheetName)
		if err != nil {
			log(fmt.Sprintf("Error loading PIN database: %v", err))
			return New(nil)
		}
		log(fmt.Sprintf("Using sheet: %s", sheetName))
	}

	if len(rows) == 0 {
		log("Error: PIN sheet is empty")
		return New(nil)
	}

	headers := rows[0]
	log(fmt.Sprintf("Found columns in PIN file: %s", strings.Join(headers, ", ")))

	pinCol, cityCol, ok := identifyColumns(headers, log)
	if !ok {
		log("Error: Could not identify pincode and city columns in PIN file. Check the file structure.")
		return New(nil)
	}

	var entries []Entry
	for _, row := range rows[1:] {
		pin := pincode.Clean(cell(row, pinCol))
		if pin == "" {
			continue
		}
		city := strings.ToUpper(strings.TrimSpace(cell(row, cityCol)))
		entries = append(entries, Entry{Pincode: pin, City: city})
	}

	log(fmt.Sprintf("Loaded %d valid pincodes from PIN database", len(entries)))
	return New(entries)
}

// identifyColumns resolves the pincode and city column indices through the
// exact / substring / positional cascade.
func identifyColumns(headers []string, log func(string)) (pinCol, cityCol int, ok bool) {
	pinCol, cityCol = -1, -1

	for i, h := range headers {
		switch strings.ToUpper(strings.TrimSpace(h)) {
		case "PINCODE":
			if pinCol < 0 {
				pinCol = i
			}
		case "CITY":
			if cityCol < 0 {
				cityCol = i
			}
		}
	}

	if pinCol < 0 {
		for i, h := range headers {
			if strings.Contains(strings.ToUpper(h), "PIN") {
				pinCol = i
				log(fmt.Sprintf("Using '%s' as pincode column", strings.TrimSpace(h)))
				break
			}
		}
	}
	if cityCol < 0 {
		for i, h := range headers {
			if strings.Contains(strings.ToUpper(h), "CITY") {
				cityCol = i
				log(fmt.Sprintf("Using '%s' as city column", strings.TrimSpace(h)))
				break
			}
		}
	}

	// Positional fallback requires at least two columns.
	if pinCol < 0 || cityCol < 0 {
		if len(headers) < 2 {
			return -1, -1, false
		}
		pinCol, cityCol = 0, 1
		log(fmt.Sprintf("Using first column '%s' as pincode and second column '%s' as city",
			strings.TrimSpace(headers[0]), strings.TrimSpace(headers[1])))
	}

	return pinCol, cityCol, true
}

// cell returns the value at index i, tolerating the short rows excelize
// produces when trailing cells are empty.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
