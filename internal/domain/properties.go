package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ExtractNumber pulls a numeric value out of a loosely-typed GeoJSON-style
// property bag. Upstream WFS services disagree on key spelling and casing
// ("elevation", "Elevation", "ELEV_M", ...) and on whether numbers arrive as
// JSON numbers or strings, so lookup tries each candidate key in order,
// case-insensitively, and falls back to def when nothing parses.
func ExtractNumber(props map[string]any, def float64, keys ...string) float64 {
	if len(props) == 0 {
		return def
	}

	for _, key := range keys {
		if v, ok := props[key]; ok {
			if n, ok := asNumber(v); ok {
				return n
			}
		}
	}

	// Case-insensitive pass only after exact keys miss; exact matches are
	// the common case and must win over a differently-cased collision.
	for _, key := range keys {
		for k, v := range props {
			if strings.EqualFold(k, key) {
				if n, ok := asNumber(v); ok {
					return n
				}
			}
		}
	}

	return def
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
