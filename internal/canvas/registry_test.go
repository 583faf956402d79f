package canvas

import (
	"errors"
	"math"
	"testing"
)

func TestAppendStacksBelowExisting(t *testing.T) {
	r := NewRegistry()
	a := r.Append(ChartItem{ChartType: Bar, Title: "A"})
	if a.Position != (Position{X: 0, Y: Gap}) {
		t.Fatalf("first chart position = %+v", a.Position)
	}
	if a.Size != (Size{Width: DefaultWidth, Height: DefaultHeight}) {
		t.Fatalf("first chart size = %+v", a.Size)
	}
	b := r.Append(ChartItem{ChartType: Line, Title: "B", Size: Size{Width: 300, Height: 200}})
	wantY := a.Position.Y + a.Size.Height + ChromeHeight + Gap
	if b.Position.Y != wantY {
		t.Fatalf("second chart y = %v, want %v", b.Position.Y, wantY)
	}
	if b.Position.Y < a.Bottom() {
		t.Fatalf("appended chart overlaps the previous one")
	}
	if r.CanvasHeight() != b.Bottom()+Gap {
		t.Fatalf("canvas height = %v", r.CanvasHeight())
	}
}

func TestAppendIDsUnique(t *testing.T) {
	r := NewRegistry()
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		c := r.Append(ChartItem{ChartType: Bar})
		if seen[c.ID] {
			t.Fatalf("duplicate id %s after %d appends", c.ID, i)
		}
		seen[c.ID] = true
	}
}

func TestFindByIDThenTitle(t *testing.T) {
	r := NewRegistry()
	a := r.Append(ChartItem{Title: "Sales"})
	b := r.Append(ChartItem{Title: a.ID})
	r.Append(ChartItem{Title: "Costs"})
	r.Append(ChartItem{Title: "Costs"})

	got, err := r.Find(a.ID)
	if err != nil || got.ID != a.ID {
		t.Fatalf("id lookup should win over a title equal to the id: %+v %v", got, err)
	}
	got, err = r.Find("Sales")
	if err != nil || got.ID != a.ID {
		t.Fatalf("title lookup = %+v %v", got, err)
	}
	if got, _ := r.Find(b.ID); got.ID != b.ID {
		t.Fatalf("lookup by b id failed")
	}
	if _, err := r.Find("Costs"); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	if _, err := r.Find("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReplaceAllAndReset(t *testing.T) {
	r := NewRegistry()
	a := r.Append(ChartItem{Title: "A"})
	if err := r.ReplaceAll([]ChartItem{a, a}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("failed replace must leave registry unchanged")
	}
	if err := r.ReplaceAll([]ChartItem{{Title: "fresh"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	items := r.Items()
	if len(items) != 1 || items[0].ID == "" {
		t.Fatalf("replace should assign ids: %+v", items)
	}
	items[0].Title = "mutated"
	if got, _ := r.Find("fresh"); got.Title != "fresh" {
		t.Fatalf("Items must return a copy")
	}
	r.Reset()
	if r.Len() != 0 || r.MaxBottom() != 0 {
		t.Fatalf("reset should clear the canvas")
	}
}

func TestParseChartType(t *testing.T) {
	if ct, err := ParseChartType(" Scatter "); err != nil || ct != Scatter {
		t.Fatalf("parse = %v %v", ct, err)
	}
	if _, err := ParseChartType("donut"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	if !Pie.IsCategory() || Scatter.IsCategory() || Gantt.IsCategory() {
		t.Fatalf("IsCategory mismatch")
	}
}

func TestReplaceAllRejectsNonFiniteGeometry(t *testing.T) {
	r := NewRegistry()
	a := r.Append(ChartItem{Title: "A"})
	bad := a
	bad.Position.X = math.Inf(1)
	if err := r.ReplaceAll([]ChartItem{bad}); !errors.Is(err, ErrNonFinite) {
		t.Fatalf("expected ErrNonFinite, got %v", err)
	}
	bad = a
	bad.Size.Height = math.NaN()
	if err := r.ReplaceAll([]ChartItem{bad}); !errors.Is(err, ErrNonFinite) {
		t.Fatalf("expected ErrNonFinite, got %v", err)
	}
	if got, _ := r.Find(a.ID); got.Position != a.Position || got.Size != a.Size {
		t.Fatalf("rejected replace must leave registry unchanged: %+v", got)
	}

	c := r.Append(ChartItem{Title: "B", Size: Size{Width: math.Inf(1), Height: 300}})
	if c.Size != (Size{Width: DefaultWidth, Height: DefaultHeight}) {
		t.Fatalf("non-finite append size should fall back to the default: %+v", c.Size)
	}
}
