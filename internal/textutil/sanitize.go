package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// maxFileNameLength bounds generated names well under common filesystem
// limits, leaving room for dedup suffixes and the extension.
const maxFileNameLength = 200

// fileNameReplacer replaces filesystem-reserved characters with hyphens.
var fileNameReplacer = strings.NewReplacer(
	"<", "-",
	">", "-",
	":", "-",
	"\"", "-",
	"/", "-",
	"\\", "-",
	"|", "-",
	"?", "-",
	"*", "-",
)

// SanitizeFileName converts arbitrary text into a filesystem-safe base name.
// Reserved characters become hyphens, whitespace runs collapse to a single
// space, and the result is trimmed and truncated to 200 characters. Truncation
// may cut mid-word. The function is idempotent.
func SanitizeFileName(name string) string {
	name = norm.NFC.String(name)
	name = fileNameReplacer.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	runes := []rune(name)
	if len(runes) > maxFileNameLength {
		name = strings.TrimSpace(string(runes[:maxFileNameLength]))
	}
	return name
}
