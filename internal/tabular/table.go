// =============================================================================
// Post File Merger - Tabular Data Model
// =============================================================================
//
// This module provides the in-memory table representation shared by every
// stage of the merge pipeline, together with readers for the input shapes:
// tab-delimited text files, OOXML (.xlsx) workbooks, and legacy BIFF (.xls)
// workbooks.
//
// Every cell is kept as a raw string. Numeric coercion would destroy codes
// like pincodes ("110001" must never become 110001), so none is performed.
//
// =============================================================================

package tabular

import (
	"fmt"
	"strings"
)

// Table is an ordered collection of rows with named columns. Headers preserve
// the source column order; Rows map header -> raw string value.
type Table struct {
	// Headers contains the column headers in source order.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column with a constant value on every row. If the
// column already exists only the values are overwritten.
func (t *Table) AddColumn(name, value string) {
	if !t.HasColumn(name) {
		t.Headers = append(t.Headers, name)
	}
	for _, row := range t.Rows {
		row[name] = value
	}
}

// EnsureColumn adds the column with an empty value unless it already exists.
func (t *Table) EnsureColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Headers = append(t.Headers, name)
	for _, row := range t.Rows {
		row[name] = ""
	}
}

// RenameColumn renames a column in place, moving the values of every row.
// Renaming a missing column is a no-op.
func (t *Table) RenameColumn(from, to string) {
	if from == to || !t.HasColumn(from) {
		return
	}
	for i, h := range t.Headers {
		if h == from {
			t.Headers[i] = to
			break
		}
	}
	for _, row := range t.Rows {
		row[to] = row[from]
		delete(row, from)
	}
}

// Project returns a new table containing exactly the given columns in the
// given order. Columns absent from the source are filled with empty strings.
func (t *Table) Project(columns []string) *Table {
	out := &Table{Headers: append([]string(nil), columns...)}
	out.Rows = make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		projected := make(map[string]string, len(columns))
		for _, col := range columns {
			projected[col] = row[col]
		}
		out.Rows = append(out.Rows, projected)
	}
	return out
}

// Append concatenates the rows of other onto t. The header set of the first
// appended table wins; callers are expected to project tables onto a common
// schema beforehand.
func (t *Table) Append(other *Table) {
	if len(t.Headers) == 0 {
		t.Headers = append([]string(nil), other.Headers...)
	}
	t.Rows = append(t.Rows, other.Rows...)
}

// cleanHeaders trims header values, names blank headers Column_N, and
// suffixes repeated names (X, X.1, X.2) so that every column stays
// addressable and no value is lost to a map-key collision.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	used := make(map[string]bool, len(headers))
	counts := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		if used[h] {
			base := h
			for n := counts[base] + 1; ; n++ {
				h = fmt.Sprintf("%s.%d", base, n)
				if !used[h] {
					counts[base] = n
					break
				}
			}
		}
		used[h] = true
		cleaned[i] = h
	}
	return cleaned
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// rowsToTable converts raw rows (first row = headers) into a Table. Empty
// rows are skipped; short rows are padded with empty strings; values are
// trimmed.
func rowsToTable(raw [][]string) *Table {
	if len(raw) == 0 {
		return &Table{}
	}

	headers := cleanHeaders(raw[0])
	table := &Table{
		Headers: headers,
		Rows:    make([]map[string]string, 0, len(raw)-1),
	}

	for _, row := range raw[1:] {
		if isRowEmpty(row) {
			continue
		}
		m := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				m[h] = strings.TrimSpace(row[i])
			} else {
				m[h] = ""
			}
		}
		table.Rows = append(table.Rows, m)
	}

	return table
}
