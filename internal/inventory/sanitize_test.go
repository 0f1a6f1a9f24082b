package inventory

import (
	"encoding/json"
	"math"
	"testing"
)

func TestSanitizeTable(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  int
	}{
		{"empty string", "", 0},
		{"whitespace string", "   ", 0},
		{"garbage string", "invalid", 0},
		{"negative int", -5, 0},
		{"negative string", "-5", 0},
		{"thousands separators", "3,000", 3000},
		{"fractional string floors", "2.7", 2},
		{"fractional float floors", 2.7, 2},
		{"plain int", 42, 42},
		{"int string", "15", 15},
		{"padded string", "  7 ", 7},
		{"nil", nil, 0},
		{"bool is not a count", true, 0},
		{"map is not a count", map[string]any{"x": 1}, 0},
		{"nan", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 0},
		{"negative infinity", math.Inf(-1), 0},
		{"negative float", -2.7, 0},
		{"json number", json.Number("1,000"), 0},
		{"json number plain", json.Number("12"), 12},
		{"large comma string", "1,234,567", 1234567},
		{"uint in range", uint(9), 9},
		{"uint past int64 range", uint(1) << 63, 0},
		{"uint64 past int64 range", uint64(math.MaxInt64) + 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.input); got != tc.want {
				t.Fatalf("Sanitize(%#v) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeNeverNegative(t *testing.T) {
	inputs := []any{-1, -999, "-3,000", "-0.5", math.Inf(-1), int64(-7), float32(-1.5), uint(1) << 63, uint64(1) << 63}
	for _, input := range inputs {
		if got := Sanitize(input); got < 0 {
			t.Fatalf("Sanitize(%#v) = %d, want non-negative", input, got)
		}
	}
}
