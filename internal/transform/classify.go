package transform

import "github.com/KaramelBytes/chartloom-cli/internal/sheet"

// ColumnClassification splits the columns of a row set into numeric and
// textual ones. AllColumns keeps source order; the other two are ordered
// subsequences of it.
type ColumnClassification struct {
	TextColumns    []string `json:"textColumns" yaml:"textColumns"`
	NumericColumns []string `json:"numericColumns" yaml:"numericColumns"`
	AllColumns     []string `json:"allColumns" yaml:"allColumns"`
}

// Classify inspects only the first row. A column is numeric when its value
// there coerces to a finite number; anything else, including nil, is text.
// Columns that first appear in later rows are not seen.
func Classify(rows []sheet.Row) ColumnClassification {
	out := ColumnClassification{
		TextColumns:    []string{},
		NumericColumns: []string{},
		AllColumns:     []string{},
	}
	if len(rows) == 0 {
		return out
	}
	first := rows[0]
	for _, col := range first.Keys() {
		out.AllColumns = append(out.AllColumns, col)
		v, _ := first.Get(col)
		if _, ok := Number(v); ok {
			out.NumericColumns = append(out.NumericColumns, col)
		} else {
			out.TextColumns = append(out.TextColumns, col)
		}
	}
	return out
}
