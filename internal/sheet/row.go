package sheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Row is one record of a sheet: column name to scalar value (string, float64,
// bool or nil). Unlike a plain map it remembers the order in which columns
// were first set, which is the column order of the source file.
type Row struct {
	keys   []string
	values map[string]any
}

// NewRow builds a row from parallel key/value slices. Missing values are nil.
func NewRow(keys []string, values []any) Row {
	r := Row{}
	for i, k := range keys {
		var v any
		if i < len(values) {
			v = values[i]
		}
		r.Set(k, v)
	}
	return r
}

// Set assigns a value, appending the key if it is new.
func (r *Row) Set(key string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value for key and whether the key is present at all.
// A present key may still hold nil.
func (r Row) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether the key is present.
func (r Row) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the column names in insertion order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Row) Len() int { return len(r.keys) }

// MarshalJSON writes the row as a JSON object preserving key order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object preserving key order. Nested objects and
// arrays are kept as decoded by encoding/json; numbers become float64.
func (r *Row) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("row must be a JSON object")
	}
	*r = Row{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", kt)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		r.Set(key, v)
	}
	_, err = dec.Token()
	return err
}

// MarshalYAML emits an ordered mapping so YAML output keeps column order.
func (r Row) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range r.keys {
		var vn yaml.Node
		if err := vn.Encode(r.values[k]); err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &vn)
	}
	return n, nil
}

// UnmarshalYAML reads an ordered mapping. Scalars decode the way yaml.v3
// decodes into interface values; integers are widened to float64 so rows
// from YAML scripts look the same as rows from JSON.
func (r *Row) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return errors.New("row must be a YAML mapping")
	}
	*r = Row{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		var v any
		if err := n.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("decode %q: %w", n.Content[i].Value, err)
		}
		if iv, ok := v.(int); ok {
			v = float64(iv)
		}
		r.Set(n.Content[i].Value, v)
	}
	return nil
}
