package layout

import (
	"fmt"

	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
)

// Handle is the corner a manual resize is dragged from.
type Handle string

const (
	SouthEast Handle = "se"
	SouthWest Handle = "sw"
	NorthEast Handle = "ne"
	NorthWest Handle = "nw"
)

// ParseHandle accepts se, sw, ne or nw.
func ParseHandle(s string) (Handle, error) {
	switch h := Handle(s); h {
	case SouthEast, SouthWest, NorthEast, NorthWest:
		return h, nil
	}
	return "", fmt.Errorf("unknown resize handle %q (use se|sw|ne|nw)", s)
}

// Drag tracks one mouse-driven resize: a stream of pointer moves ended by a
// single release. Every intermediate size is already clamped.
type Drag struct {
	handle   Handle
	start    canvas.Size
	originX  float64
	originY  float64
	current  canvas.Size
	released bool
}

// BeginDrag starts a resize of a chart currently sized start, with the
// pointer pressed at (x, y).
func BeginDrag(start canvas.Size, h Handle, x, y float64) *Drag {
	sz := ClampSize(start.Width, start.Height)
	return &Drag{handle: h, start: sz, originX: x, originY: y, current: sz}
}

// Move feeds a pointer position and returns the live size. Moves after
// Release are ignored.
func (d *Drag) Move(x, y float64) canvas.Size {
	if d.released {
		return d.current
	}
	dx, dy := x-d.originX, y-d.originY
	w, h := d.start.Width, d.start.Height
	switch d.handle {
	case SouthEast:
		w, h = w+dx, h+dy
	case SouthWest:
		w, h = w-dx, h+dy
	case NorthEast:
		w, h = w+dx, h-dy
	case NorthWest:
		w, h = w-dx, h-dy
	}
	d.current = ClampSize(w, h)
	return d.current
}

// Release ends the drag and returns the authoritative final size.
func (d *Drag) Release() canvas.Size {
	d.released = true
	return d.current
}

// Released reports whether the drag has ended.
func (d *Drag) Released() bool { return d.released }
