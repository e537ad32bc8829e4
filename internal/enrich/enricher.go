// =============================================================================
// Post File Merger - Record Enricher
// =============================================================================
//
// This module turns one raw input table into canonical output records and,
// after all files are merged, backfills missing pincodes and cities across
// the whole batch.
//
// PER-FILE STAGES (Canonicalize):
//   1. Rename matched input columns onto the canonical schema
//   2. Build the composite AddreADD1 field from all matched address columns
//   3. Copy the sender fields onto every row (uniform per file)
//   4. Assign SL as a 1-based sequence over the file's rows
//   5. Default every canonical column absent from the source to ""
//   6. Stamp Input File Name and Sheet Name
//   7. Project down to exactly the canonical column set
//
// CROSS-FILE STAGE (Backfill): run once over the merged batch, never per
// file, so address-derived pincodes and reference cities are applied with
// identical rules regardless of which file a row came from.
//
// =============================================================================

package enrich

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/postaltools/postmerge/internal/config"
	"github.com/postaltools/postmerge/internal/pincode"
	"github.com/postaltools/postmerge/internal/reference"
	"github.com/postaltools/postmerge/internal/schema"
	"github.com/postaltools/postmerge/internal/sender"
	"github.com/postaltools/postmerge/internal/tabular"
)

// FileMeta identifies the source of a table within the merged batch.
type FileMeta struct {
	// FileName is the base name of the input file.
	FileName string

	// SheetName is the workbook sheet the rows came from. Empty for
	// delimited text inputs, which have no sheet concept.
	SheetName string
}

// Canonicalize normalizes one input table onto the canonical output schema.
// profile may be nil; sender fields are then left blank. The returned table
// carries exactly cfg.OutputColumns in order.
func Canonicalize(t *tabular.Table, meta FileMeta, profile *sender.Profile, cfg *config.Config, log func(string)) *tabular.Table {
	schema.Rename(t, cfg.FieldAliases, cfg.OutputColumns, log)

	if cols := schema.JoinAddress(t, cfg.AddressAliases); len(cols) > 0 {
		log(fmt.Sprintf("Found address columns: %s", strings.Join(cols, ", ")))
	}

	applySender(t, profile)

	// SL restarts at 1 for every file; it is not globally unique across the
	// merged batch.
	t.EnsureColumn(config.FieldSL)
	for i, row := range t.Rows {
		row[config.FieldSL] = strconv.Itoa(i + 1)
	}

	for _, col := range cfg.OutputColumns {
		t.EnsureColumn(col)
	}

	t.AddColumn(config.FieldInputFile, meta.FileName)
	t.AddColumn(config.FieldSheetName, meta.SheetName)

	return t.Project(cfg.OutputColumns)
}

// applySender copies the sender's six fields onto every row, uniform per
// file. A nil profile blanks them instead.
func applySender(t *tabular.Table, profile *sender.Profile) {
	var p sender.Profile
	if profile != nil {
		p = *profile
	}
	t.AddColumn("SenderCity", p.City)
	t.AddColumn("SenderPincode", p.Pincode)
	t.AddColumn("SenderName", p.Name)
	t.AddColumn("SenderADD1", p.ADD1)
	t.AddColumn("SenderADD2", p.ADD2)
	t.AddColumn("SenderADD3", p.ADD3)
}

// addressFields is the fixed scan order for pincode extraction from free
// text. The first non-empty extraction wins.
var addressFields = []string{config.FieldAddress, config.FieldAddress2, config.FieldAddress3}

// Backfill runs the cross-file enrichment pass over the merged batch and
// returns a new table, leaving the input untouched. For every row: the
// pincode is cleaned; when empty it is recovered from the address fields;
// the city is trimmed; when empty and a pincode is present the city is
// resolved through the reference table. Unresolvable pincodes are logged,
// not errors.
func Backfill(batch *tabular.Table, ref *reference.Table, log func(string)) *tabular.Table {
	log("Processing pincodes and cities for the merged batch...")

	out := &tabular.Table{
		Headers: append([]string(nil), batch.Headers...),
		Rows:    make([]map[string]string, 0, batch.Len()),
	}

	pincodesFound := 0
	citiesFound := 0

	for _, src := range batch.Rows {
		row := make(map[string]string, len(src))
		for k, v := range src {
			row[k] = v
		}

		row[config.FieldPincode] = pincode.Clean(row[config.FieldPincode])
		if row[config.FieldPincode] == "" {
			for _, field := range addressFields {
				if pin := pincode.ExtractFromText(row[field]); pin != "" {
					row[config.FieldPincode] = pin
					pincodesFound++
					break
				}
			}
		}

		row[config.FieldCity] = strings.TrimSpace(row[config.FieldCity])
		if row[config.FieldCity] == "" && row[config.FieldPincode] != "" {
			if city, ok := ref.Lookup(row[config.FieldPincode]); ok {
				row[config.FieldCity] = city
				citiesFound++
			} else {
				log(fmt.Sprintf("Pincode %s not found in PIN database.", row[config.FieldPincode]))
			}
		}

		out.Rows = append(out.Rows, row)
	}

	log(fmt.Sprintf("Extracted %d pincodes from address fields", pincodesFound))
	log(fmt.Sprintf("Mapped %d cities from pincodes", citiesFound))
	return out
}
