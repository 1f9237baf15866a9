package timecode

import (
	"regexp"
	"testing"
)

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{5.7, "00:00:05"},
		{59.999, "00:00:59"},
		{60, "00:01:00"},
		{3599, "00:59:59"},
		{3600, "01:00:00"},
		{3661.5, "01:01:01"},
		{86399, "23:59:59"},
		{360000, "100:00:00"},
	}
	for _, tc := range cases {
		if got := FormatSeconds(tc.seconds); got != tc.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatSecondsShape(t *testing.T) {
	shape := regexp.MustCompile(`^\d{2,}:\d{2}:\d{2}$`)
	for _, seconds := range []float64{0, 1, 59, 61, 3599.9, 7322, 123456789} {
		got := FormatSeconds(seconds)
		if !shape.MatchString(got) {
			t.Errorf("FormatSeconds(%v) = %q, want HH:MM:SS shape", seconds, got)
		}
	}
}
