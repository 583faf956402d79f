// Package agent owns one interactive canvas session and executes the
// assistant's tool commands against it.
package agent

import (
	"context"

	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
	"github.com/KaramelBytes/chartloom-cli/internal/layout"
	"github.com/KaramelBytes/chartloom-cli/internal/logx"
	"github.com/KaramelBytes/chartloom-cli/internal/resolve"
	"github.com/KaramelBytes/chartloom-cli/internal/share"
	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
)

// Session is the state of one canvas: the uploaded workbook, the charts and
// the last upload error. It is driven by one caller at a time; the only
// background work is a pending Upload, which is folded in on the caller's
// goroutine.
type Session struct {
	Charts   *canvas.Registry
	Resolver resolve.Resolver

	upload   *sheet.Upload
	workbook *sheet.Workbook
	loadErr  error
}

func NewSession() *Session {
	return &Session{Charts: canvas.NewRegistry()}
}

// Attach starts tracking an in-flight upload. Until it resolves the session
// behaves as if no workbook were loaded.
func (s *Session) Attach(u *sheet.Upload) {
	s.upload = u
}

// OnWorkbookParsed applies a finished upload. A new workbook clears the
// canvas; a failure leaves no workbook and records the error.
func (s *Session) OnWorkbookParsed(wb *sheet.Workbook, err error) {
	s.upload = nil
	if err != nil {
		logx.Warnf("workbook parse failed: %v", err)
		s.workbook, s.loadErr = nil, err
		return
	}
	logx.Debugf("workbook %q ready with %d sheet(s)", wb.Name, wb.Len())
	s.workbook, s.loadErr = wb, nil
	s.Charts.Reset()
}

// sync folds a resolved upload into the session without blocking.
func (s *Session) sync() {
	if s.upload == nil {
		return
	}
	select {
	case <-s.upload.Done():
		wb, err := s.upload.Wait(context.Background())
		s.OnWorkbookParsed(wb, err)
	default:
	}
}

// Workbook returns the loaded workbook, or nil while nothing is loaded or an
// upload is still pending.
func (s *Session) Workbook() *sheet.Workbook {
	s.sync()
	return s.workbook
}

// LoadError is the error of the last failed upload, if any.
func (s *Session) LoadError() error {
	s.sync()
	return s.loadErr
}

// Pending reports whether an upload is still being parsed.
func (s *Session) Pending() bool {
	s.sync()
	return s.upload != nil
}

// LoadShared places a chart decoded from a share link at the top-left corner
// at the default size. It does nothing unless the canvas is empty and the
// payload decodes.
func (s *Session) LoadShared(param string) (canvas.ChartItem, bool) {
	if s.Charts.Len() > 0 {
		return canvas.ChartItem{}, false
	}
	p, ok := share.Decode(param)
	if !ok {
		logx.Debugf("ignoring malformed shared chart payload")
		return canvas.ChartItem{}, false
	}
	item := canvas.ChartItem{
		ID:          canvas.NewID(),
		ChartType:   p.ChartType,
		Title:       p.Title,
		Data:        p.Data,
		Description: p.Description,
		Size:        canvas.Size{Width: canvas.DefaultWidth, Height: canvas.DefaultHeight},
	}
	if err := s.Charts.ReplaceAll([]canvas.ChartItem{item}); err != nil {
		return canvas.ChartItem{}, false
	}
	return item, true
}

// DragResize replays a manual corner drag on one chart: press at from, the
// pointer moves, then release. Only the released size is stored.
func (s *Session) DragResize(ident string, h layout.Handle, from canvas.Position, moves []canvas.Position) (canvas.Size, error) {
	c, err := s.Charts.Find(ident)
	if err != nil {
		return canvas.Size{}, err
	}
	d := layout.BeginDrag(c.Size, h, from.X, from.Y)
	for _, m := range moves {
		d.Move(m.X, m.Y)
	}
	final := d.Release()
	items, sz, err := layout.ResizeOne(s.Charts.Items(), c.ID, final.Width, final.Height)
	if err != nil {
		return canvas.Size{}, err
	}
	return sz, s.Charts.ReplaceAll(items)
}
