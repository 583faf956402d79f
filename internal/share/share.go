// Package share encodes single charts into URL-safe links and back.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/KaramelBytes/chartloom-cli/internal/canvas"
	"github.com/KaramelBytes/chartloom-cli/internal/sheet"
)

// Param is the query parameter a shared chart travels in.
const Param = "chart"

// DefaultTitle names shared charts that arrive without a title.
const DefaultTitle = "Shared Chart"

// Payload is the shareable part of a chart.
type Payload struct {
	ChartType   canvas.ChartType `json:"chartType" yaml:"chartType"`
	Title       string           `json:"title" yaml:"title"`
	Data        []sheet.Row      `json:"data" yaml:"data"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
}

// FromItem extracts the shareable fields of a chart.
func FromItem(c canvas.ChartItem) Payload {
	return Payload{ChartType: c.ChartType, Title: c.Title, Data: c.Data, Description: c.Description}
}

// Encode returns the base64 JSON form of p, unescaped.
func Encode(p Payload) (string, error) {
	if p.Data == nil {
		p.Data = []sheet.Row{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode chart: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Link appends the encoded payload to base as the chart query parameter.
func Link(base string, p Payload) (string, error) {
	enc, err := Encode(p)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse share base url: %w", err)
	}
	q := u.Query()
	q.Set(Param, enc)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Decode accepts a full link, a query-escaped parameter or a bare base64
// payload. It reports false for anything that does not decode to a payload
// with a known chart type and a data array; callers ignore such input.
func Decode(s string) (Payload, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Payload{}, false
	}
	if u, err := url.Parse(raw); err == nil && u.RawQuery != "" {
		if v := u.Query().Get(Param); v != "" {
			raw = v
		}
	} else if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}

	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		if b, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(raw, "=")); err != nil {
			return Payload{}, false
		}
	}
	var wire struct {
		ChartType   string      `json:"chartType"`
		Title       string      `json:"title"`
		Data        []sheet.Row `json:"data"`
		Description string      `json:"description"`
	}
	if err := json.Unmarshal(b, &wire); err != nil || wire.Data == nil {
		return Payload{}, false
	}
	ct, err := canvas.ParseChartType(wire.ChartType)
	if err != nil {
		return Payload{}, false
	}
	p := Payload{ChartType: ct, Title: wire.Title, Data: wire.Data, Description: wire.Description}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	return p, true
}
