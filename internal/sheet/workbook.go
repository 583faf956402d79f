package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Sheet is an ordered sequence of rows. Rows are expected, not required, to
// share a column set.
type Sheet []Row

// Columns returns the keys of the first row, or nil for an empty sheet.
func (s Sheet) Columns() []string {
	if len(s) == 0 {
		return nil
	}
	return s[0].Keys()
}

// Workbook maps sheet names to sheets in source order. The first sheet is the
// default. A Workbook is built once by a loader and treated as read-only.
type Workbook struct {
	Name   string
	names  []string
	sheets map[string]Sheet
}

// NewWorkbook returns an empty workbook named after its source file.
func NewWorkbook(name string) *Workbook {
	return &Workbook{Name: name, sheets: make(map[string]Sheet)}
}

// Add appends a sheet. Adding an existing name replaces its rows but keeps
// its original position.
func (w *Workbook) Add(name string, rows Sheet) {
	if w.sheets == nil {
		w.sheets = make(map[string]Sheet)
	}
	if _, ok := w.sheets[name]; !ok {
		w.names = append(w.names, name)
	}
	w.sheets[name] = rows
}

// Names returns sheet names in order.
func (w *Workbook) Names() []string {
	if w == nil {
		return nil
	}
	out := make([]string, len(w.names))
	copy(out, w.names)
	return out
}

// Sheet looks up a sheet by name.
func (w *Workbook) Sheet(name string) (Sheet, bool) {
	if w == nil {
		return nil, false
	}
	s, ok := w.sheets[name]
	return s, ok
}

// First returns the default sheet.
func (w *Workbook) First() (string, Sheet, bool) {
	if w == nil || len(w.names) == 0 {
		return "", nil, false
	}
	n := w.names[0]
	return n, w.sheets[n], true
}

func (w *Workbook) Len() int {
	if w == nil {
		return 0
	}
	return len(w.names)
}

// MarshalJSON writes {"sheetName": [rows...], ...} in sheet order.
func (w *Workbook) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range w.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(n)
		buf.Write(kb)
		buf.WriteByte(':')
		rows := w.sheets[n]
		if rows == nil {
			rows = Sheet{}
		}
		vb, err := json.Marshal(rows)
		if err != nil {
			return nil, fmt.Errorf("marshal sheet %q: %w", n, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
