package sheet

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Loader reads a file from disk into a Workbook.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string) (*Workbook, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupported indicates no registered loader accepts the file.
var ErrUnsupported = errors.New("unsupported workbook format")

// LoadFile selects a loader based on filename and parses the file.
func LoadFile(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat workbook: %w", err)
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path)
		}
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
	Register(xlsLoader{})
}

// headerNames turns a raw header row into unique, non-empty column names:
// blanks become __EMPTY, __EMPTY_1, ... and repeats get a _N suffix.
func headerNames(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	empties := 0
	for i, h := range raw {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "__EMPTY"
			if empties > 0 {
				name = fmt.Sprintf("__EMPTY_%d", empties)
			}
			empties++
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}

// parseCell types a raw cell: blank -> nil, numeric -> float64,
// TRUE/FALSE -> bool, anything else stays a string.
func parseCell(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	switch strings.ToUpper(t) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return s
}

// buildSheet converts a header plus raw records into rows. Every row carries
// every header key (nil when the cell is missing); fully blank records are
// dropped.
func buildSheet(header []string, records [][]string) Sheet {
	names := headerNames(header)
	rows := make(Sheet, 0, len(records))
	for _, rec := range records {
		blank := true
		vals := make([]any, len(names))
		for i := range names {
			if i < len(rec) {
				vals[i] = parseCell(rec[i])
				if vals[i] != nil {
					blank = false
				}
			}
		}
		if blank {
			continue
		}
		rows = append(rows, NewRow(names, vals))
	}
	return rows
}
