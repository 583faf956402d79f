// Package layout computes chart positions and sizes on the canvas. Every
// function is pure: it takes the current charts and returns a new slice,
// leaving its input untouched.
package layout

import (
	"math"

	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
)

const (
	MinWidth  = 200.0
	MinHeight = 150.0
	MaxWidth  = 2000.0
	MaxHeight = 1000.0

	DefaultColumns     = 2
	DefaultChartWidth  = 600.0
	DefaultChartHeight = 300.0

	DefaultShrink = 0.7
	DefaultGrow   = 1.3
)

// Direction selects shrinking or growing in Scale.
type Direction int

const (
	Shrink Direction = iota
	Grow
)

func (d Direction) String() string {
	if d == Grow {
		return "grow"
	}
	return "shrink"
}

// ClampSize bounds a chart size to [MinWidth, MaxWidth] x [MinHeight,
// MaxHeight]. Non-finite inputs collapse to the minimum.
func ClampSize(width, height float64) canvas.Size {
	return canvas.Size{Width: bound(width, MinWidth, MaxWidth), Height: bound(height, MinHeight, MaxHeight)}
}

func bound(v, min, max float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < min {
		return min
	}
	return math.Min(v, max)
}

func orDefault(v, def float64) float64 {
	if math.IsNaN(v) || v == 0 {
		return def
	}
	return v
}

// ClampFactor substitutes the default for a zero factor and bounds it to
// [0.1, 1.0] when shrinking or [1.0, 3.0] when growing.
func ClampFactor(factor float64, dir Direction) float64 {
	if dir == Grow {
		return math.Max(1.0, math.Min(3.0, orDefault(factor, DefaultGrow)))
	}
	return math.Max(0.1, math.Min(1.0, orDefault(factor, DefaultShrink)))
}

func clone(items []canvas.ChartItem) []canvas.ChartItem {
	out := make([]canvas.ChartItem, len(items))
	copy(out, items)
	return out
}

// ResizeOne sets the size of the chart matching ident. On a lookup failure
// the charts come back unchanged together with the lookup error.
func ResizeOne(items []canvas.ChartItem, ident string, width, height float64) ([]canvas.ChartItem, canvas.Size, error) {
	sz := ClampSize(width, height)
	i, err := canvas.FindIndex(items, ident)
	if err != nil {
		return items, sz, err
	}
	out := clone(items)
	out[i].Size = sz
	return out, sz, nil
}

// ResizeAll gives every chart the same clamped size.
func ResizeAll(items []canvas.ChartItem, width, height float64) ([]canvas.ChartItem, canvas.Size) {
	sz := ClampSize(width, height)
	out := clone(items)
	for i := range out {
		out[i].Size = sz
	}
	return out, sz
}

// Scale multiplies every chart's size by the clamped factor. Shrinking floors
// at the minimum size, growing caps at the maximum. Positions do not move.
func Scale(items []canvas.ChartItem, factor float64, dir Direction) ([]canvas.ChartItem, float64) {
	f := ClampFactor(factor, dir)
	out := clone(items)
	for i := range out {
		w, h := out[i].Size.Width*f, out[i].Size.Height*f
		if dir == Grow {
			out[i].Size = canvas.Size{Width: math.Min(MaxWidth, w), Height: math.Min(MaxHeight, h)}
		} else {
			out[i].Size = canvas.Size{Width: math.Max(MinWidth, w), Height: math.Max(MinHeight, h)}
		}
	}
	return out, f
}

// GridSpec describes a tiling. Zero fields take the defaults.
type GridSpec struct {
	Columns     int     `json:"columns" yaml:"columns"`
	ChartWidth  float64 `json:"chartWidth" yaml:"chartWidth"`
	ChartHeight float64 `json:"chartHeight" yaml:"chartHeight"`
}

// Normalize fills defaults and clamps the chart size.
func (g GridSpec) Normalize() GridSpec {
	if g.Columns <= 0 {
		g.Columns = DefaultColumns
	}
	sz := ClampSize(orDefault(g.ChartWidth, DefaultChartWidth), orDefault(g.ChartHeight, DefaultChartHeight))
	g.ChartWidth, g.ChartHeight = sz.Width, sz.Height
	return g
}

// Cell returns the position of grid slot i, counting rows from rowOffset.
func (g GridSpec) Cell(i, rowOffset int) canvas.Position {
	row := i/g.Columns + rowOffset
	col := i % g.Columns
	return canvas.Position{
		X: float64(col) * (g.ChartWidth + canvas.Gap),
		Y: float64(row) * (g.ChartHeight + canvas.ChromeHeight + canvas.Gap),
	}
}

func (g GridSpec) size() canvas.Size {
	return canvas.Size{Width: g.ChartWidth, Height: g.ChartHeight}
}

// Grid re-tiles every chart in insertion order.
func Grid(items []canvas.ChartItem, spec GridSpec) ([]canvas.ChartItem, GridSpec) {
	g := spec.Normalize()
	out := clone(items)
	for i := range out {
		out[i].Position = g.Cell(i, 0)
		out[i].Size = g.size()
	}
	return out, g
}

// Pair pins two charts side by side on the top row and tiles the rest into
// two columns below them, keeping their relative order. If either identifier
// does not resolve the charts come back unchanged with the lookup error.
// Width and height in spec apply; its column count is ignored.
func Pair(items []canvas.ChartItem, first, second string, spec GridSpec) ([]canvas.ChartItem, GridSpec, error) {
	spec.Columns = DefaultColumns
	g := spec.Normalize()
	fi, err := canvas.FindIndex(items, first)
	if err != nil {
		return items, g, err
	}
	si, err := canvas.FindIndex(items, second)
	if err != nil {
		return items, g, err
	}
	out := clone(items)
	out[fi].Position = g.Cell(0, 0)
	out[fi].Size = g.size()
	out[si].Position = g.Cell(1, 0)
	out[si].Size = g.size()

	slot := 0
	for i := range out {
		if i == fi || i == si {
			continue
		}
		out[i].Position = g.Cell(slot, 1)
		out[i].Size = g.size()
		slot++
	}
	return out, g, nil
}
