package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
)

type xlsLoader struct{}

func (xlsLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xls")
}

// Load reads legacy BIFF workbooks. Cells arrive as display strings and are
// typed with the same rules as CSV cells.
func (xlsLoader) Load(path string) (*Workbook, error) {
	book, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	wb := NewWorkbook(filepath.Base(path))
	for si := 0; si < book.NumSheets(); si++ {
		ws := book.GetSheet(si)
		if ws == nil {
			continue
		}
		grid := make([][]string, 0, int(ws.MaxRow)+1)
		for ri := 0; ri <= int(ws.MaxRow); ri++ {
			row := ws.Row(ri)
			if row == nil {
				grid = append(grid, nil)
				continue
			}
			// LastCol is one past the last cell.
			cells := make([]string, row.LastCol())
			for ci := range cells {
				cells[ci] = row.Col(ci)
			}
			grid = append(grid, cells)
		}
		name := ws.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", si+1)
		}
		wb.Add(name, sheetFromGrid(grid))
	}
	return wb, nil
}
