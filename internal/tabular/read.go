// =============================================================================
// Post File Merger - Input File Readers
// =============================================================================

package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// ReadDelimited reads a tab-delimited text file (.txt or .csv from the
// upstream systems) into a Table. The first row supplies the headers.
func ReadDelimited(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.Comma = '\t'

	// Input exports are ragged and loosely quoted; accept both.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	return rowsToTable(rows), nil
}

// ReadWorkbook reads the first sheet of an OOXML (.xlsx) workbook into a
// Table and returns the sheet name alongside it. All cells are read as
// display strings. Legacy .xls files go through ReadLegacyWorkbook instead;
// excelize rejects their OLE2 container outright.
func ReadWorkbook(path string) (*Table, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, "", fmt.Errorf("sheet %q is empty", sheetName)
	}

	return rowsToTable(rows), sheetName, nil
}

// ReadLegacyWorkbook reads the first sheet of a legacy BIFF (.xls) workbook
// into a Table and returns the sheet name alongside it. Excel 97-2003 files
// are OLE2 compound documents, a format excelize does not parse.
func ReadLegacyWorkbook(path string) (*Table, string, error) {
	workbook, err := xls.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open workbook: %w", err)
	}

	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, "", fmt.Errorf("workbook has no sheets")
	}

	rows := make([][]string, 0, sheet.GetNumberRows())
	for i := 0; i < sheet.GetNumberRows(); i++ {
		row, err := sheet.GetRow(i)
		if err != nil {
			continue
		}
		cells := row.GetCols()
		values := make([]string, len(cells))
		for j, cell := range cells {
			values[j] = cell.GetString()
		}
		rows = append(rows, values)
	}
	if len(rows) == 0 {
		return nil, "", fmt.Errorf("sheet %q is empty", sheet.GetName())
	}

	return rowsToTable(rows), sheet.GetName(), nil
}
