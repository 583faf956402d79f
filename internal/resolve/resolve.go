// Package resolve turns a possibly incomplete chart request into chart-ready
// data, falling back from the caller's payload to the uploaded workbook.
package resolve

import (
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
	"github.com/KaramelBytes/chartloom-cli/internal/transform"
)

// Source records where the resolved data came from.
type Source string

const (
	SourceExplicit Source = "explicit"
	SourceWorkbook Source = "workbook"
	SourceReshaped Source = "reshaped"
	SourceNone     Source = "none"
)

// Request is a chart creation request. A nil Data means the caller sent no
// data; a non-nil empty slice is an explicit empty series.
type Request struct {
	ChartType   canvas.ChartType
	Title       string
	Data        []sheet.Row
	Description string
}

// Result is the best-effort chart payload. Data is never nil.
type Result struct {
	ChartType   canvas.ChartType `json:"chartType" yaml:"chartType"`
	Title       string           `json:"title" yaml:"title"`
	Data        []sheet.Row      `json:"data" yaml:"data"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Timestamp   time.Time        `json:"timestamp" yaml:"timestamp"`
	Source      Source           `json:"source" yaml:"source"`
}

// Resolver fills chart requests. The zero value is ready to use.
type Resolver struct {
	// Now stamps results; defaults to time.Now.
	Now func() time.Time
}

// Resolve never fails: when no rule produces a series the result carries
// whatever data the request had, or an empty series.
func (r Resolver) Resolve(req Request, wb *sheet.Workbook) Result {
	data, src := req.Data, SourceExplicit
	if data == nil {
		src = SourceNone
		if _, rows, ok := wb.First(); ok && len(rows) > 0 {
			if derived, ok := derive(req.ChartType, rows); ok {
				data, src = derived, SourceWorkbook
			}
		}
	}
	if len(data) > 0 && !shaped(req.ChartType, data[0]) {
		if reshaped, ok := derive(req.ChartType, data); ok {
			data, src = reshaped, SourceReshaped
		}
	}
	if data == nil {
		data = []sheet.Row{}
	}
	return Result{
		ChartType:   req.ChartType,
		Title:       req.Title,
		Data:        data,
		Description: req.Description,
		Timestamp:   r.now(),
		Source:      src,
	}
}

func (r Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// shaped reports whether a first element already has the keys the chart type
// consumes. Types without a known point shape are always considered shaped.
func shaped(t canvas.ChartType, first sheet.Row) bool {
	switch {
	case t == canvas.Scatter:
		return first.Has("x") && first.Has("y")
	case t.IsCategory():
		return first.Has("name") && first.Has("value")
	}
	return true
}

// derive classifies rows and builds a series with the first suitable columns:
// scatter takes the first two numeric columns and the first text column as
// service; every other type takes the first text and first numeric column.
func derive(t canvas.ChartType, rows []sheet.Row) ([]sheet.Row, bool) {
	cols := transform.Classify(rows)
	if t == canvas.Scatter {
		if len(cols.NumericColumns) < 2 {
			return nil, false
		}
		service := ""
		if len(cols.TextColumns) > 0 {
			service = cols.TextColumns[0]
		}
		return transform.ScatterRows(transform.BuildScatterSeries(rows, cols.NumericColumns[0], cols.NumericColumns[1], service)), true
	}
	if len(cols.TextColumns) == 0 || len(cols.NumericColumns) == 0 {
		return nil, false
	}
	return transform.CategoryRows(transform.BuildCategorySeries(rows, cols.TextColumns[0], cols.NumericColumns[0])), true
}
