package agent

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
)

// NoDataSummary is reported when there is nothing to summarize.
const NoDataSummary = "No data provided"

// SheetSummary describes one sheet by row count and first-row columns.
type SheetSummary struct {
	TotalRows int      `json:"totalRows" yaml:"totalRows"`
	Columns   []string `json:"columns" yaml:"columns"`
}

// DataSummary is the analyzeDataSummary result. Summary is either
// NoDataSummary or a row keyed by sheet name, in workbook order, whose values
// are SheetSummary.
type DataSummary struct {
	Summary any `json:"summary" yaml:"summary"`
}

// Summarize describes every sheet of wb.
func Summarize(wb *sheet.Workbook) DataSummary {
	if wb == nil || wb.Len() == 0 {
		return DataSummary{Summary: NoDataSummary}
	}
	var out sheet.Row
	for _, name := range wb.Names() {
		rows, _ := wb.Sheet(name)
		cols := []string{}
		if len(rows) > 0 {
			cols = rows[0].Keys()
		}
		out.Set(name, SheetSummary{TotalRows: len(rows), Columns: cols})
	}
	return DataSummary{Summary: out}
}

func (s *Session) analyzeDataSummary(args json.RawMessage) (any, error) {
	var in struct {
		Sheets json.RawMessage `json:"sheets"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	raw := bytes.TrimSpace(in.Sheets)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Summarize(s.Workbook()), nil
	}
	wb, err := decodeSheets(raw)
	if err != nil {
		return nil, err
	}
	return Summarize(wb), nil
}

// decodeSheets reads a {"name": [rows...]} object keeping sheet order.
func decodeSheets(raw json.RawMessage) (*sheet.Workbook, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: sheets: %v", ErrBadArguments, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: sheets must be an object of sheet name to rows", ErrBadArguments)
	}
	wb := sheet.NewWorkbook("")
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: sheets: %v", ErrBadArguments, err)
		}
		name, _ := kt.(string)
		var rows json.RawMessage
		if err := dec.Decode(&rows); err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrBadArguments, name, err)
		}
		wb.Add(name, decodeRows(rows))
	}
	return wb, nil
}
