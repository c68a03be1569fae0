package timeutil

import (
	"math"
	"testing"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00:00.00"},
		{90, "00:01:30.00"},
		{3661, "01:01:01.00"},
		{30.53, "00:00:30.53"},
	}

	for _, tt := range tests {
		if got := FormatSeconds(tt.seconds); got != tt.expected {
			t.Errorf("FormatSeconds(%v) = %q, expected %q", tt.seconds, got, tt.expected)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		ts       string
		expected float64
	}{
		{"00:00:00.000000", 0},
		{"00:01:30.000000", 90},
		{"01:01:01.500000", 3661.5},
		{"00:00:30.53", 30.53},
	}

	for _, tt := range tests {
		got, err := ParseTimestamp(tt.ts)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) failed: %v", tt.ts, err)
			continue
		}
		if math.Abs(got-tt.expected) > 1e-6 {
			t.Errorf("ParseTimestamp(%q) = %v, expected %v", tt.ts, got, tt.expected)
		}
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, ts := range []string{"", "90", "1:2", "aa:bb:cc", "1:2:3:4"} {
		if _, err := ParseTimestamp(ts); err == nil {
			t.Errorf("ParseTimestamp(%q) should fail", ts)
		}
	}
}
