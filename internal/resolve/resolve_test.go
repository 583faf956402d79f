package resolve

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
)

func row(kv ...any) sheet.Row {
	var r sheet.Row
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i].(string), kv[i+1])
	}
	return r
}

func workbook(rows ...sheet.Row) *sheet.Workbook {
	wb := sheet.NewWorkbook("test.xlsx")
	wb.Add("First", rows)
	wb.Add("Second", sheet.Sheet{row("ignored", "x", "n", 1.0)})
	return wb
}

func asJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

var fixed = Resolver{Now: func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }}

func TestExplicitShapedDataUnchanged(t *testing.T) {
	data := []sheet.Row{row("name", "Jan", "value", 3.0, "extra", true)}
	res := fixed.Resolve(Request{ChartType: canvas.Bar, Title: "T", Data: data}, workbook(row("a", "x", "b", 1.0)))
	if res.Source != SourceExplicit || !reflect.DeepEqual(res.Data, data) {
		t.Fatalf("explicit data should pass through: %+v", res)
	}
	if !res.Timestamp.Equal(fixed.Now()) {
		t.Fatalf("timestamp = %v", res.Timestamp)
	}
}

func TestScatterDerivedFromWorkbook(t *testing.T) {
	wb := workbook(
		row("a", 1.0, "b", 2.0, "c", "api"),
		row("a", 3.0, "b", 4.0, "c", "db"),
	)
	res := fixed.Resolve(Request{ChartType: canvas.Scatter, Title: "T"}, wb)
	if res.Source != SourceWorkbook {
		t.Fatalf("source = %s", res.Source)
	}
	want := `[{"x":1,"y":2,"service":"api"},{"x":3,"y":4,"service":"db"}]`
	if got := asJSON(t, res.Data); got != want {
		t.Fatalf("data = %s, want %s", got, want)
	}
}

func TestCategoryDerivedFromFirstSheet(t *testing.T) {
	wb := workbook(row("id", 7.0, "month", "Jan", "sales", 10.0))
	res := fixed.Resolve(Request{ChartType: canvas.Pie}, wb)
	if got := asJSON(t, res.Data); got != `[{"name":"Jan","value":7}]` {
		t.Fatalf("data = %s", got)
	}
}

func TestGanttDerivesAsCategory(t *testing.T) {
	res := fixed.Resolve(Request{ChartType: canvas.Gantt}, workbook(row("task", "build", "days", 3.0)))
	if got := asJSON(t, res.Data); got != `[{"name":"build","value":3}]` {
		t.Fatalf("data = %s", got)
	}
}

func TestUnmetRequirementsLeaveEmpty(t *testing.T) {
	cases := []struct {
		name string
		ct   canvas.ChartType
		wb   *sheet.Workbook
	}{
		{"no workbook", canvas.Bar, nil},
		{"scatter one numeric", canvas.Scatter, workbook(row("a", 1.0, "b", "x"))},
		{"bar no text", canvas.Bar, workbook(row("a", 1.0, "b", 2.0))},
		{"empty sheet", canvas.Line, workbook()},
	}
	for _, tc := range cases {
		res := fixed.Resolve(Request{ChartType: tc.ct}, tc.wb)
		if res.Data == nil || len(res.Data) != 0 || res.Source != SourceNone {
			t.Fatalf("%s: expected empty unresolved data, got %+v", tc.name, res)
		}
	}
}

func TestMisshapedDataIsReclassified(t *testing.T) {
	given := []sheet.Row{
		row("region", "North", "revenue", "120", "cost", 80.0),
		row("region", "South", "revenue", 90.0, "cost", 70.0),
	}
	// The workbook must not be consulted when data is present.
	wb := workbook(row("other", "zzz", "n", 1.0))

	bar := fixed.Resolve(Request{ChartType: canvas.Bar, Data: given}, wb)
	if bar.Source != SourceReshaped {
		t.Fatalf("source = %s", bar.Source)
	}
	if got := asJSON(t, bar.Data); got != `[{"name":"North","value":120},{"name":"South","value":90}]` {
		t.Fatalf("bar data = %s", got)
	}

	sc := fixed.Resolve(Request{ChartType: canvas.Scatter, Data: given}, wb)
	if got := asJSON(t, sc.Data); got != `[{"x":120,"y":80,"service":"North"},{"x":90,"y":70,"service":"South"}]` {
		t.Fatalf("scatter data = %s", got)
	}
}

func TestMisshapedUnresolvableKeptAsIs(t *testing.T) {
	given := []sheet.Row{row("only", "text")}
	res := fixed.Resolve(Request{ChartType: canvas.Line, Data: given}, nil)
	if res.Source != SourceExplicit || !reflect.DeepEqual(res.Data, given) {
		t.Fatalf("unresolvable data should be returned unchanged: %+v", res)
	}
	gantt := []sheet.Row{row("task", "a", "start", 1.0)}
	if res := fixed.Resolve(Request{ChartType: canvas.Gantt, Data: gantt}, nil); !reflect.DeepEqual(res.Data, gantt) {
		t.Fatalf("gantt data is never reshaped")
	}
}

func TestExplicitEmptyDataIsKept(t *testing.T) {
	res := fixed.Resolve(Request{ChartType: canvas.Bar, Data: []sheet.Row{}}, workbook(row("a", "x", "b", 1.0)))
	if len(res.Data) != 0 || res.Source != SourceExplicit {
		t.Fatalf("explicit empty data must not be replaced: %+v", res)
	}
}
