package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
)

// chartID turns a canvas id into an identifier the generated script can use.
func chartID(id string) string {
	var b strings.Builder
	for _, r := range id {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "chart"
	}
	return b.String()
}

func px(v float64) string { return fmt.Sprintf("%.0fpx", v) }

func globalOpts(c canvas.ChartItem) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: c.Title, Subtitle: c.Description}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:   px(c.Size.Width),
			Height:  px(c.Size.Height),
			ChartID: chartID(c.ID),
		}),
	}
}

func echart(c canvas.ChartItem) components.Charter {
	switch drawnAs(c.ChartType) {
	case canvas.Pie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(globalOpts(c)...)
		var data []opts.PieData
		for _, p := range categories(c.Data) {
			data = append(data, opts.PieData{Name: p.Name, Value: p.Value})
		}
		pie.AddSeries(c.Title, data)
		return pie
	case canvas.Scatter:
		sc := charts.NewScatter()
		sc.SetGlobalOptions(append(globalOpts(c),
			charts.WithXAxisOpts(opts.XAxis{Type: "value"}),
			charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		)...)
		order, groups := scatterGroups(c.Data)
		for _, service := range order {
			var data []opts.ScatterData
			for _, p := range groups[service] {
				data = append(data, opts.ScatterData{Value: []float64{p.X, p.Y}})
			}
			sc.AddSeries(service, data)
		}
		return sc
	case canvas.Line, canvas.Area:
		line := charts.NewLine()
		line.SetGlobalOptions(globalOpts(c)...)
		var names []string
		var data []opts.LineData
		for _, p := range categories(c.Data) {
			names = append(names, p.Name)
			data = append(data, opts.LineData{Value: p.Value})
		}
		line.SetXAxis(names)
		if c.ChartType == canvas.Area {
			line.AddSeries(c.Title, data, charts.WithAreaStyleOpts(opts.AreaStyle{Color: "rgba(84,112,198,0.3)"}))
		} else {
			line.AddSeries(c.Title, data)
		}
		return line
	default:
		bar := charts.NewBar()
		bar.SetGlobalOptions(globalOpts(c)...)
		var names []string
		var data []opts.BarData
		for _, p := range categories(c.Data) {
			names = append(names, p.Name)
			data = append(data, opts.BarData{Value: p.Value})
		}
		bar.SetXAxis(names)
		bar.AddSeries(c.Title, data)
		return bar
	}
}

// canvasCSS pins every chart at its canvas position.
func canvasCSS(items []canvas.ChartItem, height float64) string {
	var b strings.Builder
	b.WriteString("<style>\n")
	fmt.Fprintf(&b, "body { position: relative; min-height: %s; margin: 0; }\n", px(height))
	b.WriteString(".container { display: block; }\n")
	for _, c := range items {
		fmt.Fprintf(&b, "#%s { position: absolute; left: %s; top: %s; }\n",
			chartID(c.ID), px(c.Position.X), px(c.Position.Y+canvas.ChromeHeight/2))
	}
	b.WriteString("</style>\n")
	return b.String()
}

// CanvasHTML writes a standalone page with every chart at its canvas
// position. height is the canvas height, usually Registry.CanvasHeight.
func CanvasHTML(w io.Writer, title string, items []canvas.ChartItem, height float64) error {
	page := components.NewPage()
	page.PageTitle = title
	page.SetLayout(components.PageNoneLayout)
	for _, c := range items {
		page.AddCharts(echart(c))
	}

	var buf strings.Builder
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}
	out := buf.String()
	out = strings.Replace(out, "</head>", canvasCSS(items, height)+"</head>", 1)
	if len(items) == 0 {
		out = strings.Replace(out, "<body>", "<body>\n<p>No charts yet.</p>", 1)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write canvas: %w", err)
	}
	return nil
}
