package canvas

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
)

// ChartType names a chart renderer.
type ChartType string

const (
	Bar     ChartType = "bar"
	Line    ChartType = "line"
	Pie     ChartType = "pie"
	Area    ChartType = "area"
	Scatter ChartType = "scatter"
	Gantt   ChartType = "gantt"
)

// ChartTypes lists the supported chart types.
var ChartTypes = []ChartType{Bar, Line, Pie, Area, Scatter, Gantt}

// ParseChartType normalizes case and whitespace and rejects unknown types.
func ParseChartType(s string) (ChartType, error) {
	t := ChartType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ChartTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown chart type %q (use bar|line|pie|area|scatter|gantt)", s)
}

// IsCategory reports whether the type consumes {name, value} points.
func (t ChartType) IsCategory() bool {
	switch t {
	case Bar, Line, Area, Pie:
		return true
	}
	return false
}

// Position is the top-left corner of a chart on the canvas, in pixels.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Position) finite() bool { return isFinite(p.X) && isFinite(p.Y) }

// Size is a chart's canvas footprint in pixels.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (s Size) finite() bool { return isFinite(s.Width) && isFinite(s.Height) }

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// ChartItem is one chart placed on the canvas.
type ChartItem struct {
	ID          string      `json:"id" yaml:"id"`
	ChartType   ChartType   `json:"chartType" yaml:"chartType"`
	Title       string      `json:"title" yaml:"title"`
	Data        []sheet.Row `json:"data" yaml:"data"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Position    Position    `json:"position" yaml:"position"`
	Size        Size        `json:"size" yaml:"size"`
}

// Bottom is the lowest canvas y the chart occupies, including its chrome.
func (c ChartItem) Bottom() float64 {
	return c.Position.Y + c.Size.Height + ChromeHeight
}
