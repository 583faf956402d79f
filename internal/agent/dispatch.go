package agent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
	"github.com/KaramelBytes/chartloom-cli/internal/layout"
	"github.com/KaramelBytes/chartloom-cli/internal/logx"
	"github.com/KaramelBytes/chartloom-cli/internal/resolve"
	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
	"github.com/KaramelBytes/chartloom-cli/internal/transform"
)

var (
	// ErrUnknownTool is returned for a command name with no handler.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrBadArguments wraps argument decoding and validation failures.
	ErrBadArguments = errors.New("bad tool arguments")
)

// ErrorResult is what Dispatch returns in place of a failed command.
type ErrorResult struct {
	Error string `json:"error"`
}

// ChartCreated is the createChart result: the resolved payload plus where
// the chart landed.
type ChartCreated struct {
	resolve.Result `yaml:",inline"`
	ID             string          `json:"id" yaml:"id"`
	Position       canvas.Position `json:"position" yaml:"position"`
	Size           canvas.Size     `json:"size" yaml:"size"`
}

// ActionResult reports a layout command. Applied is false when the command
// changed nothing, for example when an identifier did not match.
type ActionResult struct {
	Action          string    `json:"action" yaml:"action"`
	ChartIdentifier string    `json:"chartIdentifier,omitempty" yaml:"chartIdentifier,omitempty"`
	First           string    `json:"first,omitempty" yaml:"first,omitempty"`
	Second          string    `json:"second,omitempty" yaml:"second,omitempty"`
	Width           float64   `json:"width,omitempty" yaml:"width,omitempty"`
	Height          float64   `json:"height,omitempty" yaml:"height,omitempty"`
	ScaleFactor     float64   `json:"scaleFactor,omitempty" yaml:"scaleFactor,omitempty"`
	Columns         int       `json:"columns,omitempty" yaml:"columns,omitempty"`
	ChartWidth      float64   `json:"chartWidth,omitempty" yaml:"chartWidth,omitempty"`
	ChartHeight     float64   `json:"chartHeight,omitempty" yaml:"chartHeight,omitempty"`
	Applied         bool      `json:"applied" yaml:"applied"`
	Reason          string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
}

type handler func(s *Session, args json.RawMessage) (any, error)

var handlers = map[string]handler{
	"createChart":         (*Session).createChart,
	"resizeChart":         (*Session).resizeChart,
	"resizeAllCharts":     (*Session).resizeAllCharts,
	"makeChartsSmaller":   (*Session).makeChartsSmaller,
	"makeChartsLarger":    (*Session).makeChartsLarger,
	"arrangeChartsInGrid": (*Session).arrangeChartsInGrid,
	"arrangePair":         (*Session).arrangePair,
	"analyzeDataSummary":  (*Session).analyzeDataSummary,
	"showFullPageChart":   (*Session).showFullPageChart,
	"dragChart":           (*Session).dragChart,
}

// Call runs one command. Empty args are treated as {}.
func (s *Session) Call(name string, args json.RawMessage) (any, error) {
	h, ok := handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	if len(bytes.TrimSpace(args)) == 0 {
		args = json.RawMessage("{}")
	}
	logx.Debugf("tool %s %s", name, args)
	return h(s, args)
}

// Dispatch runs one command and always returns a JSON document: the result,
// or an ErrorResult describing why the command failed.
func (s *Session) Dispatch(name string, args json.RawMessage) json.RawMessage {
	res, err := s.Call(name, args)
	if err != nil {
		logx.Warnf("tool %s: %v", name, err)
		res = ErrorResult{Error: err.Error()}
	}
	b, err := json.Marshal(res)
	if err != nil {
		b, _ = json.Marshal(ErrorResult{Error: fmt.Sprintf("encode %s result: %v", name, err)})
	}
	return b
}

func decodeArgs(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadArguments, err)
	}
	return nil
}

func (s *Session) now() time.Time {
	if s.Resolver.Now != nil {
		return s.Resolver.Now()
	}
	return time.Now()
}

// number is an optional numeric argument. Models sometimes send numbers as
// strings, so anything that coerces is accepted.
type number struct {
	v   float64
	set bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	f, ok := transform.Number(raw)
	if !ok {
		return fmt.Errorf("not a number: %s", b)
	}
	n.v, n.set = f, true
	return nil
}

// requireSize reports the first of width, height that was not supplied.
func requireSize(width, height number) error {
	for _, a := range []struct {
		name string
		n    number
	}{{"width", width}, {"height", height}} {
		if !a.n.set {
			return fmt.Errorf("%w: %s is required", ErrBadArguments, a.name)
		}
	}
	return nil
}

// decodeRows reads a data argument. Anything but an array counts as no data;
// array elements that are not objects become empty rows.
func decodeRows(raw json.RawMessage) []sheet.Row {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	rows := make([]sheet.Row, len(elems))
	for i, e := range elems {
		var r sheet.Row
		if err := json.Unmarshal(e, &r); err == nil {
			rows[i] = r
		}
	}
	return rows
}

func (s *Session) createChart(args json.RawMessage) (any, error) {
	var in struct {
		ChartType   string          `json:"chartType"`
		Title       string          `json:"title"`
		Data        json.RawMessage `json:"data"`
		Description string          `json:"description"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	ct, err := canvas.ParseChartType(in.ChartType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
	}
	res := s.Resolver.Resolve(resolve.Request{
		ChartType:   ct,
		Title:       in.Title,
		Data:        decodeRows(in.Data),
		Description: in.Description,
	}, s.Workbook())
	if res.Source == resolve.SourceNone {
		logx.Infof("createChart %q: no usable columns, chart has no data", in.Title)
	}
	item := s.Charts.Append(canvas.ChartItem{
		ChartType:   res.ChartType,
		Title:       res.Title,
		Data:        res.Data,
		Description: res.Description,
	})
	return ChartCreated{Result: res, ID: item.ID, Position: item.Position, Size: item.Size}, nil
}

// apply stores a layout result, or reports why nothing changed.
func (s *Session) apply(r *ActionResult, items []canvas.ChartItem, err error) (any, error) {
	r.Timestamp = s.now()
	if err != nil {
		if errors.Is(err, canvas.ErrNotFound) || errors.Is(err, canvas.ErrAmbiguous) {
			r.Reason = err.Error()
			return *r, nil
		}
		return nil, err
	}
	if err := s.Charts.ReplaceAll(items); err != nil {
		return nil, err
	}
	r.Applied = len(items) > 0
	if !r.Applied {
		r.Reason = "no charts on the canvas"
	}
	return *r, nil
}

func (s *Session) resizeChart(args json.RawMessage) (any, error) {
	var in struct {
		ChartIdentifier string `json:"chartIdentifier"`
		Width           number `json:"width"`
		Height          number `json:"height"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if err := requireSize(in.Width, in.Height); err != nil {
		return nil, err
	}
	items, sz, err := layout.ResizeOne(s.Charts.Items(), in.ChartIdentifier, in.Width.v, in.Height.v)
	r := ActionResult{Action: "resizeChart", ChartIdentifier: in.ChartIdentifier, Width: sz.Width, Height: sz.Height}
	return s.apply(&r, items, err)
}

func (s *Session) resizeAllCharts(args json.RawMessage) (any, error) {
	var in struct {
		Width  number `json:"width"`
		Height number `json:"height"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if err := requireSize(in.Width, in.Height); err != nil {
		return nil, err
	}
	items, sz := layout.ResizeAll(s.Charts.Items(), in.Width.v, in.Height.v)
	return s.apply(&ActionResult{Action: "resizeAllCharts", Width: sz.Width, Height: sz.Height}, items, nil)
}

func (s *Session) scale(action string, dir layout.Direction, args json.RawMessage) (any, error) {
	var in struct {
		ScaleFactor number `json:"scaleFactor"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	items, f := layout.Scale(s.Charts.Items(), in.ScaleFactor.v, dir)
	return s.apply(&ActionResult{Action: action, ScaleFactor: f}, items, nil)
}

func (s *Session) makeChartsSmaller(args json.RawMessage) (any, error) {
	return s.scale("makeChartsSmaller", layout.Shrink, args)
}

func (s *Session) makeChartsLarger(args json.RawMessage) (any, error) {
	return s.scale("makeChartsLarger", layout.Grow, args)
}

func (s *Session) arrangeChartsInGrid(args json.RawMessage) (any, error) {
	var in struct {
		Columns     number `json:"columns"`
		ChartWidth  number `json:"chartWidth"`
		ChartHeight number `json:"chartHeight"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	items, g := layout.Grid(s.Charts.Items(), layout.GridSpec{
		Columns:     int(in.Columns.v),
		ChartWidth:  in.ChartWidth.v,
		ChartHeight: in.ChartHeight.v,
	})
	r := ActionResult{Action: "arrangeChartsInGrid", Columns: g.Columns, ChartWidth: g.ChartWidth, ChartHeight: g.ChartHeight}
	return s.apply(&r, items, nil)
}

func (s *Session) arrangePair(args json.RawMessage) (any, error) {
	var in struct {
		First       string `json:"first"`
		Second      string `json:"second"`
		ChartWidth  number `json:"chartWidth"`
		ChartHeight number `json:"chartHeight"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	items, g, err := layout.Pair(s.Charts.Items(), in.First, in.Second, layout.GridSpec{
		ChartWidth:  in.ChartWidth.v,
		ChartHeight: in.ChartHeight.v,
	})
	r := ActionResult{Action: "arrangePair", First: in.First, Second: in.Second, ChartWidth: g.ChartWidth, ChartHeight: g.ChartHeight}
	return s.apply(&r, items, err)
}

// FullPageView is the showFullPageChart result: the view request echoed back
// for the caller to display. It does not touch the canvas.
type FullPageView struct {
	ChartType     string    `json:"chartType" yaml:"chartType"`
	Title         string    `json:"title" yaml:"title"`
	DataType      string    `json:"dataType" yaml:"dataType"`
	ServiceFilter string    `json:"serviceFilter,omitempty" yaml:"serviceFilter,omitempty"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
}

func (s *Session) showFullPageChart(args json.RawMessage) (any, error) {
	var v FullPageView
	if err := decodeArgs(args, &v); err != nil {
		return nil, err
	}
	v.Timestamp = s.now()
	return v, nil
}

func (s *Session) dragChart(args json.RawMessage) (any, error) {
	var in struct {
		ChartIdentifier string            `json:"chartIdentifier"`
		Handle          string            `json:"handle"`
		From            canvas.Position   `json:"from"`
		Moves           []canvas.Position `json:"moves"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Handle == "" {
		in.Handle = string(layout.SouthEast)
	}
	h, err := layout.ParseHandle(in.Handle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArguments, err)
	}
	r := ActionResult{Action: "dragChart", ChartIdentifier: in.ChartIdentifier, Timestamp: s.now()}
	sz, err := s.DragResize(in.ChartIdentifier, h, in.From, in.Moves)
	if err != nil {
		if errors.Is(err, canvas.ErrNotFound) || errors.Is(err, canvas.ErrAmbiguous) {
			r.Reason = err.Error()
			return r, nil
		}
		return nil, err
	}
	r.Width, r.Height, r.Applied = sz.Width, sz.Height, true
	return r, nil
}
