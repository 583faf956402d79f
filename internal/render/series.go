// Package render draws canvas charts as an HTML page or as single images.
package render

import (
	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
	"github.com/KaramelBytes/chartloom-cli/internal/transform"
)

// categories reads {name, value} rows. Rows of any other shape still
// contribute a point, with the same fallbacks the series builder uses.
func categories(rows []sheet.Row) []transform.CategoryPoint {
	return transform.BuildCategorySeries(rows, "name", "value")
}

// scatterGroups reads {x, y, service} rows grouped by service in first-seen
// order.
func scatterGroups(rows []sheet.Row) ([]string, map[string][]transform.ScatterPoint) {
	var order []string
	groups := make(map[string][]transform.ScatterPoint)
	for _, p := range transform.BuildScatterSeries(rows, "x", "y", "service") {
		if _, ok := groups[p.Service]; !ok {
			order = append(order, p.Service)
		}
		groups[p.Service] = append(groups[p.Service], p)
	}
	return order, groups
}

// drawnAs is the chart type actually drawn. Gantt data has no dedicated
// renderer and is drawn as bars.
func drawnAs(t canvas.ChartType) canvas.ChartType {
	if t == canvas.Gantt {
		return canvas.Bar
	}
	return t
}
