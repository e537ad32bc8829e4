// =============================================================================
// Post File Merger - Schema Mapper
// =============================================================================
//
// This module matches the arbitrary column headers of an input file to the
// canonical output schema using declarative alias lists. An alias list is an
// " Or "-separated string of acceptable header spellings; matching is a
// case-insensitive exact comparison on the trimmed header. Partial matches
// are deliberately not accepted here (unlike the reference-table column
// inference, which may fall back to substrings).
//
// The matchers are pure functions over header slices so they can be unit
// tested without constructing full tables.
//
// =============================================================================

package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/postaltools/postmerge/internal/config"
	"github.com/postaltools/postmerge/internal/tabular"
)

// AliasDelimiter separates entries in an alias list.
const AliasDelimiter = " Or "

// SplitAliases splits an alias list into its trimmed entries, dropping
// empties left behind by sloppy spacing in the source data.
func SplitAliases(aliasList string) []string {
	parts := strings.Split(aliasList, AliasDelimiter)
	aliases := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			aliases = append(aliases, p)
		}
	}
	return aliases
}

// MatchSingle returns the first header matching any alias, scanning aliases
// in list order so that earlier aliases take priority.
func MatchSingle(headers []string, aliasList string) (string, bool) {
	for _, alias := range SplitAliases(aliasList) {
		want := strings.ToLower(alias)
		for _, h := range headers {
			if strings.ToLower(strings.TrimSpace(h)) == want {
				return h, true
			}
		}
	}
	return "", false
}

// MatchAll returns every header matching any alias, preserving the header
// (table column) order. Used for multi-part address fields that must be
// concatenated per row.
func MatchAll(headers []string, aliasList string) []string {
	aliases := SplitAliases(aliasList)
	wanted := make(map[string]bool, len(aliases))
	for _, alias := range aliases {
		wanted[strings.ToLower(alias)] = true
	}

	var matched []string
	for _, h := range headers {
		if wanted[strings.ToLower(strings.TrimSpace(h))] {
			matched = append(matched, h)
		}
	}
	return matched
}

// Rename applies the canonical field aliases to the table, renaming each
// matched input column onto its canonical name. columnOrder is the artifact
// column order of the active configuration; it fixes both the log output and
// which field wins when two alias lists could claim the same input header.
// Unmatched canonical fields are left absent; the enricher defaults them
// later. Returns the applied mapping (input header -> canonical field).
func Rename(t *tabular.Table, fieldAliases map[string]string, columnOrder []string, log func(string)) map[string]string {
	applied := make(map[string]string)

	for _, field := range canonicalOrder(fieldAliases, columnOrder) {
		aliasList := fieldAliases[field]
		source, ok := MatchSingle(t.Headers, aliasList)
		if !ok {
			continue
		}
		if source != field {
			t.RenameColumn(source, field)
		}
		applied[source] = field
		log(fmt.Sprintf("Mapped '%s' to '%s'", source, field))
	}

	return applied
}

// canonicalOrder returns the alias-table keys in the given artifact column
// order, with any extra keys appended alphabetically last.
func canonicalOrder(fieldAliases map[string]string, columnOrder []string) []string {
	order := make([]string, 0, len(fieldAliases))
	seen := make(map[string]bool, len(fieldAliases))
	for _, col := range columnOrder {
		if _, ok := fieldAliases[col]; ok && !seen[col] {
			order = append(order, col)
			seen[col] = true
		}
	}
	var extra []string
	for field := range fieldAliases {
		if !seen[field] {
			extra = append(extra, field)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

// JoinAddress concatenates every matched address column into the composite
// AddreADD1 field, joining non-empty parts with ", " in source column order
// and trimming the result. Returns the matched columns; when none matched
// the table is left untouched.
func JoinAddress(t *tabular.Table, aliasList string) []string {
	cols := MatchAll(t.Headers, aliasList)
	if len(cols) == 0 {
		return nil
	}

	t.EnsureColumn(config.FieldAddress)
	for _, row := range t.Rows {
		var parts []string
		for _, col := range cols {
			if v := row[col]; v != "" {
				parts = append(parts, v)
			}
		}
		row[config.FieldAddress] = strings.TrimSpace(strings.Join(parts, ", "))
	}
	return cols
}
