package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	t.Run("accepts the supported layouts", func(t *testing.T) {
		cases := map[string]time.Time{
			"2026-03-14":                   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			"2026-03-14T15:09:26":          time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
			"2026-03-14T15:09:26Z":         time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
			"2026-03-14T15:09:26.535Z":     time.Date(2026, 3, 14, 15, 9, 26, 535000000, time.UTC),
			"2026-03-14T15:09:26+10:00":    time.Date(2026, 3, 14, 5, 9, 26, 0, time.UTC),
			"  2026-03-14T15:09:26Z \t":    time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
			"2026-03-14T15:09:26.1+10:00":  time.Date(2026, 3, 14, 5, 9, 26, 100000000, time.UTC),
		}

		for input, want := range cases {
			got, err := ParseDate(input)
			require.NoError(t, err, "input %q", input)
			require.True(t, got.Equal(want), "input %q: got %v", input, got)
			require.Equal(t, time.UTC, got.Location(), "input %q", input)
		}
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, input := range []string{"", "14/03/2026", "March 14", "2026-13-40", "1742000000"} {
			_, err := ParseDate(input)
			require.Error(t, err, "input %q", input)
		}
	})
}

func TestCoerceXP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		want int64
	}{
		{"nil", nil, 0},
		{"float", float64(25), 25},
		{"fractional truncates", float64(7.9), 7},
		{"float-typed whole number", float64(5.0), 5},
		{"int", 12, 12},
		{"int64", int64(3), 3},
		{"negative clamps to zero", float64(-10), 0},
		{"numeric string", "42", 42},
		{"float string", "5.0", 5},
		{"padded string", " 8 ", 8},
		{"non-numeric string", "lots", 0},
		{"bool", true, 0},
		{"object", map[string]any{"xp": 5}, 0},
		{"json number", json.Number("19"), 19},
		{"bad json number", json.Number("x"), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CoerceXP(tc.in))
		})
	}
}
