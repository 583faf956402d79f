package canvas

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	// Gap separates neighbouring charts.
	Gap = 20.0
	// ChromeHeight is the vertical space each chart's surrounding UI takes
	// beyond its plot size.
	ChromeHeight = 140.0
	// DefaultWidth and DefaultHeight size newly created charts.
	DefaultWidth  = 1200.0
	DefaultHeight = 400.0
)

var (
	// ErrNotFound means no chart matched an identifier.
	ErrNotFound = errors.New("chart not found")
	// ErrAmbiguous means an identifier matched no id and several titles.
	ErrAmbiguous = errors.New("chart identifier is ambiguous")
	// ErrDuplicateID means a replacement set reused an id.
	ErrDuplicateID = errors.New("duplicate chart id")
	// ErrNonFinite means a replacement set carried an infinite or NaN
	// position or size.
	ErrNonFinite = errors.New("non-finite chart geometry")
)

// NewID returns a fresh chart id.
func NewID() string { return "chart-" + uuid.NewString() }

// Registry is the ordered set of charts on one canvas. It is owned by a single
// session and is not safe for concurrent use.
type Registry struct {
	items []ChartItem
}

func NewRegistry() *Registry { return &Registry{} }

// Append stores a new chart below everything already on the canvas and
// returns it with its assigned id and position. A zero size gets the default.
func (r *Registry) Append(item ChartItem) ChartItem {
	item.ID = NewID()
	if !item.Size.finite() || item.Size.Width <= 0 || item.Size.Height <= 0 {
		item.Size = Size{Width: DefaultWidth, Height: DefaultHeight}
	}
	item.Position = Position{X: 0, Y: r.MaxBottom() + Gap}
	r.items = append(r.items, item)
	return item
}

// Find resolves an identifier: an exact id match wins, otherwise a unique
// title match. Several charts sharing the title yield ErrAmbiguous.
func (r *Registry) Find(ident string) (ChartItem, error) {
	i, err := FindIndex(r.items, ident)
	if err != nil {
		return ChartItem{}, err
	}
	return r.items[i], nil
}

// FindIndex applies the Find rules to a plain slice.
func FindIndex(items []ChartItem, ident string) (int, error) {
	for i, c := range items {
		if c.ID == ident {
			return i, nil
		}
	}
	found := -1
	for i, c := range items {
		if c.Title != ident {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("%w: %d charts titled %q", ErrAmbiguous, countTitle(items, ident), ident)
		}
		found = i
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: %q", ErrNotFound, ident)
	}
	return found, nil
}

func countTitle(items []ChartItem, title string) int {
	n := 0
	for _, c := range items {
		if c.Title == title {
			n++
		}
	}
	return n
}

// ReplaceAll swaps in a new chart set, typically the output of a layout
// operation. Items without an id get one. The set is rejected as a whole,
// leaving the registry unchanged, on a duplicate id or non-finite geometry.
func (r *Registry) ReplaceAll(items []ChartItem) error {
	next := make([]ChartItem, len(items))
	seen := make(map[string]bool, len(items))
	for i, c := range items {
		if c.ID == "" {
			c.ID = NewID()
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		if !c.Position.finite() || !c.Size.finite() {
			return fmt.Errorf("%w: %s at %+v size %+v", ErrNonFinite, c.ID, c.Position, c.Size)
		}
		seen[c.ID] = true
		next[i] = c
	}
	r.items = next
	return nil
}

// Reset removes every chart.
func (r *Registry) Reset() { r.items = nil }

// Items returns a copy of the charts in insertion order.
func (r *Registry) Items() []ChartItem {
	out := make([]ChartItem, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Registry) Len() int { return len(r.items) }

// MaxBottom is the largest Bottom over all charts, 0 for an empty canvas.
func (r *Registry) MaxBottom() float64 {
	m := 0.0
	for _, c := range r.items {
		if b := c.Bottom(); b > m {
			m = b
		}
	}
	return m
}

// CanvasHeight is the height the rendered canvas needs.
func (r *Registry) CanvasHeight() float64 {
	return r.MaxBottom() + Gap
}
