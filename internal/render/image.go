package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
)

// Format selects the image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts png or svg, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case PNG, SVG:
		return f, nil
	}
	return "", fmt.Errorf("unknown image format %q (use png|svg)", s)
}

// ErrEmptySeries means the chart has no points to draw.
var ErrEmptySeries = errors.New("chart has no data to draw")

var seriesColor = drawing.ColorFromHex("5470c6")

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// ChartImage draws one chart at its canvas size. Line and area charts with a
// single point are drawn as bars, and pie slices that are not positive are
// left out.
func ChartImage(w io.Writer, c canvas.ChartItem, f Format) error {
	width, height := int(c.Size.Width), int(c.Size.Height)
	if width <= 0 || height <= 0 {
		width, height = int(canvas.DefaultWidth), int(canvas.DefaultHeight)
	}
	if len(c.Data) == 0 {
		return ErrEmptySeries
	}
	t := drawnAs(c.ChartType)
	if (t == canvas.Line || t == canvas.Area) && len(c.Data) < 2 {
		t = canvas.Bar
	}

	var r interface {
		Render(chart.RendererProvider, io.Writer) error
	}
	switch t {
	case canvas.Pie:
		var values []chart.Value
		for _, p := range categories(c.Data) {
			if p.Value > 0 {
				values = append(values, chart.Value{Label: p.Name, Value: p.Value})
			}
		}
		if len(values) == 0 {
			return ErrEmptySeries
		}
		r = &chart.PieChart{Title: c.Title, Width: width, Height: height, Values: values}
	case canvas.Scatter:
		order, groups := scatterGroups(c.Data)
		var xs, ys []float64
		var series []chart.Series
		for _, service := range order {
			s := chart.ContinuousSeries{
				Name:  service,
				Style: chart.Style{StrokeWidth: chart.Disabled, DotWidth: 5, DotColor: seriesColor},
			}
			for _, p := range groups[service] {
				s.XValues = append(s.XValues, p.X)
				s.YValues = append(s.YValues, p.Y)
			}
			xs, ys = append(xs, s.XValues...), append(ys, s.YValues...)
			series = append(series, s)
		}
		r = &chart.Chart{
			Title:  c.Title,
			Width:  width,
			Height: height,
			XAxis:  chart.XAxis{Range: span(xs)},
			YAxis:  chart.YAxis{Range: span(ys)},
			Series: series,
		}
	case canvas.Line, canvas.Area:
		points := categories(c.Data)
		s := chart.ContinuousSeries{Name: c.Title, Style: chart.Style{StrokeColor: seriesColor, StrokeWidth: 2}}
		ticks := make([]chart.Tick, len(points))
		for i, p := range points {
			s.XValues = append(s.XValues, float64(i))
			s.YValues = append(s.YValues, p.Value)
			ticks[i] = chart.Tick{Value: float64(i), Label: p.Name}
		}
		if t == canvas.Area {
			s.Style.FillColor = seriesColor.WithAlpha(80)
		}
		r = &chart.Chart{
			Title:  c.Title,
			Width:  width,
			Height: height,
			XAxis:  chart.XAxis{Range: &chart.ContinuousRange{Min: 0, Max: float64(len(points) - 1)}, Ticks: ticks},
			YAxis:  chart.YAxis{Range: span(s.YValues)},
			Series: []chart.Series{s},
		}
	default:
		var bars []chart.Value
		vals := []float64{0}
		for _, p := range categories(c.Data) {
			bars = append(bars, chart.Value{Label: p.Name, Value: p.Value})
			vals = append(vals, p.Value)
		}
		r = &chart.BarChart{
			Title:  c.Title,
			Width:  width,
			Height: height,
			Bars:   bars,
			YAxis:  chart.YAxis{Range: span(vals)},
		}
	}
	if err := r.Render(f.provider(), w); err != nil {
		return fmt.Errorf("render %s chart: %w", t, err)
	}
	return nil
}

// span is a value range that is never empty.
func span(vals []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if len(vals) == 0 {
		lo, hi = 0, 1
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
