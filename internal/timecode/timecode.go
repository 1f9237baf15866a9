package timecode

import "fmt"

// FormatSeconds renders a non-negative offset in seconds as HH:MM:SS.
// Fractional seconds are truncated. Hours are zero-padded to two digits but
// grow beyond that for very long recordings.
func FormatSeconds(seconds float64) string {
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
