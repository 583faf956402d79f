package transform

import (
	"fmt"

	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
)

// CategoryPoint feeds bar, line, area and pie charts.
type CategoryPoint struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// ScatterPoint feeds scatter charts.
type ScatterPoint struct {
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	Service string  `json:"service" yaml:"service"`
}

// Row converts the point to a generic chart data row.
func (p CategoryPoint) Row() sheet.Row {
	return sheet.NewRow([]string{"name", "value"}, []any{p.Name, p.Value})
}

// Row converts the point to a generic chart data row.
func (p ScatterPoint) Row() sheet.Row {
	return sheet.NewRow([]string{"x", "y", "service"}, []any{p.X, p.Y, p.Service})
}

// BuildCategorySeries maps every row to a point; no row is dropped. Missing
// labels become "Item N" (1-based position) and values that do not coerce
// become 0.
func BuildCategorySeries(rows []sheet.Row, labelColumn, valueColumn string) []CategoryPoint {
	out := make([]CategoryPoint, 0, len(rows))
	for i, row := range rows {
		lv, _ := row.Get(labelColumn)
		name, ok := Text(lv)
		if !ok {
			name = fmt.Sprintf("Item %d", i+1)
		}
		vv, _ := row.Get(valueColumn)
		out = append(out, CategoryPoint{Name: name, Value: NumberOr(vv, 0)})
	}
	return out
}

// BuildScatterSeries maps every row to a point. An empty serviceColumn means
// no service column; missing services become "Service N".
func BuildScatterSeries(rows []sheet.Row, xColumn, yColumn, serviceColumn string) []ScatterPoint {
	out := make([]ScatterPoint, 0, len(rows))
	for i, row := range rows {
		xv, _ := row.Get(xColumn)
		yv, _ := row.Get(yColumn)
		p := ScatterPoint{X: NumberOr(xv, 0), Y: NumberOr(yv, 0)}
		if serviceColumn != "" {
			sv, _ := row.Get(serviceColumn)
			p.Service, _ = Text(sv)
		}
		if p.Service == "" {
			p.Service = fmt.Sprintf("Service %d", i+1)
		}
		out = append(out, p)
	}
	return out
}

// CategoryRows converts points to chart data rows.
func CategoryRows(points []CategoryPoint) []sheet.Row {
	out := make([]sheet.Row, len(points))
	for i, p := range points {
		out[i] = p.Row()
	}
	return out
}

// ScatterRows converts points to chart data rows.
func ScatterRows(points []ScatterPoint) []sheet.Row {
	out := make([]sheet.Row, len(points))
	for i, p := range points {
		out[i] = p.Row()
	}
	return out
}
