package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm")
}

// Load reads every sheet; the first non-empty row of each sheet is its header.
// Raw cell values are used so numbers are not affected by display formats.
func (xlsxLoader) Load(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	wb := NewWorkbook(filepath.Base(path))
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		wb.Add(name, sheetFromGrid(rows))
	}
	return wb, nil
}

// sheetFromGrid skips leading blank rows, takes the next row as the header
// and the rest as records.
func sheetFromGrid(grid [][]string) Sheet {
	for i, row := range grid {
		if isBlank(row) {
			continue
		}
		return buildSheet(row, grid[i+1:])
	}
	return Sheet{}
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
