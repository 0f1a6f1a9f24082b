package inventory

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Sanitize coerces an arbitrary field value into a non-negative integer.
// Strings are stripped of thousands-separator commas and surrounding
// whitespace before parsing; an empty string is zero. Anything that does not
// resolve to a finite, non-negative number is zero. Fractional values
// truncate toward zero, since partial equipment units are not meaningful.
// The function is total: it never returns an error for any input.
func Sanitize(v any) int {
	switch value := v.(type) {
	case nil:
		return 0
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
		if cleaned == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return clampFloat(parsed)
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0
		}
		return clampFloat(parsed)
	case int:
		return clampInt(int64(value))
	case int8:
		return clampInt(int64(value))
	case int16:
		return clampInt(int64(value))
	case int32:
		return clampInt(int64(value))
	case int64:
		return clampInt(value)
	case uint:
		if uint64(value) > math.MaxInt64 {
			return 0
		}
		return clampInt(int64(value))
	case uint8:
		return int(value)
	case uint16:
		return int(value)
	case uint32:
		return int(value)
	case uint64:
		if value > math.MaxInt64 {
			return 0
		}
		return clampInt(int64(value))
	case float32:
		return clampFloat(float64(value))
	case float64:
		return clampFloat(value)
	default:
		return 0
	}
}

func clampFloat(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(math.Trunc(f))
}

func clampInt(n int64) int {
	if n < 0 {
		return 0
	}
	return int(n)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
