// =============================================================================
// Post File Merger - Output Artifact Writer
// =============================================================================

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/postaltools/postmerge/internal/config"
	"github.com/postaltools/postmerge/internal/tabular"
)

// writeArtifact writes the merged batch as a single-sheet workbook under
// outputDir, creating the directory if absent. The filename comes from the
// configured pattern; see resolveOutputName for the placeholders.
func writeArtifact(batch *tabular.Table, cfg *config.Config, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outputDir, resolveOutputName(cfg.OutputPattern, time.Now()))

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	// Header row, then one row per record, in the fixed column order.
	if err := f.SetSheetRow(sheet, "A1", &batch.Headers); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range batch.Rows {
		values := make([]interface{}, len(batch.Headers))
		for j, col := range batch.Headers {
			values[j] = row[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save output file: %w", err)
	}
	return path, nil
}

// resolveOutputName expands the output filename pattern.
//
// PLACEHOLDERS:
//   {date} - now as DDMMYYYY
//   {uuid} - a random UUID
func resolveOutputName(pattern string, now time.Time) string {
	name := strings.ReplaceAll(pattern, "{date}", now.Format("02012006"))
	if strings.Contains(name, "{uuid}") {
		name = strings.ReplaceAll(name, "{uuid}", uuid.NewString())
	}
	return name
}
