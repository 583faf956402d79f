package transform

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Number coerces a scalar to a finite float64. It reports false for nil,
// blank strings, values that do not parse, and NaN or infinite results.
// Booleans count as 1 and 0.
func Number(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		v = s
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NumberOr is Number with a fallback for failed coercions.
func NumberOr(v any, fallback float64) float64 {
	if f, ok := Number(v); ok {
		return f
	}
	return fallback
}

// Text stringifies a scalar. It reports false for nil, for values with no
// string form, and for empty results.
func Text(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}
