package service

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the accepted date inputs, tried in order. Clients send
// either a bare calendar day or a full timestamp.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a client-supplied date string and normalizes it to UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// CoerceXP turns an arbitrary JSON value into a non-negative XP amount.
// Missing or non-numeric input coerces to 0 rather than erroring; numeric
// strings are accepted; fractional values truncate.
func CoerceXP(v any) int64 {
	var f float64

	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		f = n
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if f < 0 {
		return 0
	}
	return int64(f)
}
