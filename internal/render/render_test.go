package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
)

func point(name string, v float64) sheet.Row {
	return sheet.NewRow([]string{"name", "value"}, []any{name, v})
}

func item(id string, t canvas.ChartType, rows ...sheet.Row) canvas.ChartItem {
	return canvas.ChartItem{
		ID:        id,
		ChartType: t,
		Title:     "T " + string(t),
		Data:      rows,
		Position:  canvas.Position{X: 620, Y: 20},
		Size:      canvas.Size{Width: 600, Height: 300},
	}
}

func TestDataCSV(t *testing.T) {
	rows := []sheet.Row{
		sheet.NewRow([]string{"name", "value", "note"}, []any{`say "hi"`, 3.5, nil}),
		sheet.NewRow([]string{"name", "value"}, []any{"b", true}),
	}
	want := "name,value,note\n\"say \"\"hi\"\"\",\"3.5\",\"\"\n\"b\",\"true\",\"\""
	if got := DataCSV(rows); got != want {
		t.Fatalf("DataCSV =\n%s\nwant\n%s", got, want)
	}
	if DataCSV(nil) != "" {
		t.Fatal("empty rows should give empty csv")
	}
}

func TestChartIDIsScriptSafe(t *testing.T) {
	if got := chartID("chart-1f0e-9a"); got != "chart1f0e9a" {
		t.Fatalf("chartID = %q", got)
	}
	if chartID("---") != "chart" {
		t.Fatal("empty id should fall back")
	}
}

func TestCanvasHTMLPositionsCharts(t *testing.T) {
	items := []canvas.ChartItem{
		item("chart-a", canvas.Bar, point("x", 1), point("y", 2)),
		item("chart-b", canvas.Scatter, sheet.NewRow([]string{"x", "y", "service"}, []any{1.0, 2.0, "api"})),
		item("chart-c", canvas.Gantt, point("task", 4)),
		item("chart-d", canvas.Area, point("jan", 1), point("feb", 3)),
		item("chart-e", canvas.Pie, point("a", 1)),
	}
	var buf bytes.Buffer
	if err := CanvasHTML(&buf, "Canvas", items, 900); err != nil {
		t.Fatalf("CanvasHTML: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"#charta { position: absolute; left: 620px;", "min-height: 900px", "<title>Canvas</title>", "echarts"} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestChartImageFormats(t *testing.T) {
	cases := []canvas.ChartItem{
		item("a", canvas.Bar, point("x", 1), point("y", 2)),
		item("b", canvas.Line, point("x", 1), point("y", 1)),
		item("c", canvas.Line, point("only", 5)),
		item("d", canvas.Area, point("x", 1), point("y", 3)),
		item("e", canvas.Pie, point("x", 1), point("y", 3)),
		item("f", canvas.Scatter, sheet.NewRow([]string{"x", "y", "service"}, []any{1.0, 2.0, "api"})),
	}
	for _, c := range cases {
		var png bytes.Buffer
		if err := ChartImage(&png, c, PNG); err != nil {
			t.Fatalf("%s png: %v", c.ChartType, err)
		}
		if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
			t.Fatalf("%s: not a png", c.ChartType)
		}
		var svg bytes.Buffer
		if err := ChartImage(&svg, c, SVG); err != nil {
			t.Fatalf("%s svg: %v", c.ChartType, err)
		}
		if !strings.Contains(svg.String(), "<svg") {
			t.Fatalf("%s: not an svg", c.ChartType)
		}
	}
}

func TestChartImageEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := ChartImage(&buf, item("z", canvas.Bar), PNG); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
	if err := ChartImage(&buf, item("z", canvas.Pie, point("neg", -1)), PNG); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("pie without positive slices should be empty, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" SVG "); err != nil || f != SVG {
		t.Fatalf("ParseFormat: %v %v", f, err)
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Fatal("expected error")
	}
}
