// =============================================================================
// Post File Merger - Merge Pipeline
// =============================================================================
//
// This module orchestrates one merge run:
//
//   1. Load the pincode reference table (fatal when empty)
//   2. Load the sender profiles (non-fatal when missing)
//   3. Enumerate the input directory (fatal when missing)
//   4. Per file: read, resolve sender, canonicalize, accumulate
//   5. Concatenate, run the cross-file backfill, write the artifact
//
// The run is strictly sequential; reference and sender data are read-only
// after load and shared across file iterations without synchronization.
// Progress is reported through a synchronous log sink supplied by the
// caller, invoked inline as processing happens, never buffered.
//
// ERROR SEVERITIES:
//   Fatal         - unusable reference table or missing input directory:
//                   the run stops and no artifact is written
//   Per-file      - unreadable input file: error counter + skip
//   Informational - unmatched sender, unmatched pincode lookup: logged,
//                   processing continues
//
// Nothing escapes Run. A panic anywhere in the pipeline is recovered, logged
// with its stack, and ends the run gracefully; the artifact is only ever
// written as the final step, so an aborted run leaves no partial state.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/postaltools/postmerge/internal/config"
	"github.com/postaltools/postmerge/internal/enrich"
	"github.com/postaltools/postmerge/internal/reference"
	"github.com/postaltools/postmerge/internal/sender"
	"github.com/postaltools/postmerge/internal/tabular"
)

// Sink receives one log line at a time. It is invoked synchronously from the
// pipeline's single worker goroutine and must be safe to call from it.
type Sink func(string)

// Stats is the mutable accumulation state of one run. It is passed through
// the stage functions explicitly so the pipeline stays reentrant.
type Stats struct {
	// RunID identifies the run in the log stream.
	RunID string

	// FilesFound is the number of input files with a recognized extension.
	FilesFound int

	// Processed is the number of files that contributed rows to the batch.
	Processed int

	// Errors is the number of files skipped due to read or processing
	// failures.
	Errors int

	// Rows is the number of records in the written artifact.
	Rows int

	// OutputFile is the path of the written artifact; empty when the run
	// ended without one.
	OutputFile string

	// Fatal reports that the run aborted on a precondition (unusable
	// reference table or missing input directory).
	Fatal bool
}

// inputExtensions are the recognized input file extensions. Anything else in
// the input directory is silently ignored.
var inputExtensions = map[string]bool{
	".txt":  true,
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// Run executes the full merge for baseDir, reporting progress to sink. It
// never returns an error or panics; consult the returned Stats.
func Run(cfg *config.Config, baseDir string, sink Sink) (stats Stats) {
	stats.RunID = uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			sink(fmt.Sprintf("Unexpected error: %v", r))
			sink(string(debug.Stack()))
			stats.Fatal = true
		}
	}()

	referenceFile := filepath.Join(baseDir, cfg.ReferenceFile)
	senderFile := filepath.Join(baseDir, cfg.SenderFile)
	inputDir := filepath.Join(baseDir, cfg.InputDir)
	outputDir := filepath.Join(baseDir, cfg.OutputDir)

	sink(fmt.Sprintf("Run %s", stats.RunID))
	sink(fmt.Sprintf("Base directory: %s", baseDir))
	sink(fmt.Sprintf("Looking for PIN file at: %s", referenceFile))
	sink(fmt.Sprintf("Looking for sender details at: %s", senderFile))
	sink(fmt.Sprintf("Reading input files from: %s", inputDir))
	sink(fmt.Sprintf("Output will be saved to: %s", outputDir))

	sink("Loading PIN database...")
	ref := reference.Load(referenceFile, cfg.ReferenceSheet, sink)
	if ref.Empty() {
		sink("Error: PIN database not loaded. Processing stopped.")
		stats.Fatal = true
		return stats
	}

	profiles := sender.Load(senderFile, sink)

	files, err := listInputFiles(inputDir)
	if err != nil {
		sink(fmt.Sprintf("Input directory not found: %s", inputDir))
		stats.Fatal = true
		return stats
	}
	stats.FilesFound = len(files)
	sink(fmt.Sprintf("Found %d input files to process", len(files)))

	batch := &tabular.Table{}
	for _, name := range files {
		processFile(cfg, inputDir, name, profiles, batch, &stats, sink)
	}

	if batch.Len() == 0 {
		sink("")
		sink("No files were successfully processed.")
		return stats
	}

	merged := enrich.Backfill(batch, ref, sink)

	outputFile, err := writeArtifact(merged, cfg, outputDir)
	if err != nil {
		sink(fmt.Sprintf("Error writing output file: %v", err))
		stats.Fatal = true
		return stats
	}

	stats.Rows = merged.Len()
	stats.OutputFile = outputFile

	sink("")
	sink(fmt.Sprintf("Saving output file with %d total records...", merged.Len()))
	sink(fmt.Sprintf("Output saved to: %s", outputFile))
	sink("")
	sink("Processing summary:")
	sink(fmt.Sprintf("Total files processed successfully: %d", stats.Processed))
	sink(fmt.Sprintf("Total files with errors: %d", stats.Errors))
	return stats
}

// processFile reads one input file and, when a sender matches, appends its
// canonical rows to the batch. Read failures count as errors and skip the
// file; a missing sender match discards the file's rows entirely.
func processFile(cfg *config.Config, inputDir, name string, profiles []sender.Profile, batch *tabular.Table, stats *Stats, sink Sink) {
	sink("")
	sink(fmt.Sprintf("Processing file: %s", name))

	table, sheetName, err := readInput(filepath.Join(inputDir, name))
	if err != nil {
		sink(fmt.Sprintf("Error reading file %s: %v", name, err))
		stats.Errors++
		return
	}

	sink(fmt.Sprintf("Successfully read file with %d rows and %d columns", table.Len(), len(table.Headers)))
	sink(fmt.Sprintf("Columns found: %s", previewColumns(table.Headers)))

	profile, ok := sender.Find(profiles, name)
	if !ok {
		// Files without sender details contribute no rows.
		sink(fmt.Sprintf("No sender details found for %s", name))
		return
	}
	sink(fmt.Sprintf("Found matching sender details for '%s'", sender.LookupKey(name)))

	canonical := enrich.Canonicalize(table, enrich.FileMeta{
		FileName:  name,
		SheetName: sheetName,
	}, &profile, cfg, sink)

	batch.Append(canonical)
	stats.Processed++
	sink(fmt.Sprintf("Successfully processed: %s", name))
}

// readInput dispatches on extension: .xlsx goes through excelize, .xls
// through the BIFF reader, anything else is read as tab-delimited text.
// Delimited inputs report an empty sheet name.
func readInput(path string) (*tabular.Table, string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return tabular.ReadWorkbook(path)
	case ".xls":
		return tabular.ReadLegacyWorkbook(path)
	default:
		table, err := tabular.ReadDelimited(path)
		return table, "", err
	}
}

// listInputFiles enumerates the input directory entries carrying a
// recognized extension, in lexical order for deterministic batch order.
func listInputFiles(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if inputExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// previewColumns renders the first few headers for the log, eliding the rest.
func previewColumns(headers []string) string {
	const max = 5
	if len(headers) <= max {
		return strings.Join(headers, ", ")
	}
	return strings.Join(headers[:max], ", ") + "..."
}
