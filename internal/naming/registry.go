package naming

import "fmt"

// Style selects the dedup suffix form for a claimed name.
type Style int

const (
	// StyleMetadata appends " (n)" to repeated metadata-derived names.
	StyleMetadata Style = iota
	// StyleFallback appends "-n" to repeated identifier-derived names.
	StyleFallback
)

// Registry tracks how many times each base name has been claimed during one
// run. It is owned by the batch runner, constructed fresh per invocation, and
// mutated from a single sequential path.
type Registry struct {
	counts map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{counts: make(map[string]int)}
}

// Claim returns a unique filename for base and ext, recording the claim. The
// first claim of a base yields "<base>.<ext>"; later claims append the
// zero-based occurrence count in the given style. The count is incremented
// exactly once per call.
func (r *Registry) Claim(base, ext string, style Style) string {
	count := r.counts[base]
	r.counts[base] = count + 1

	if count == 0 {
		return fmt.Sprintf("%s.%s", base, ext)
	}
	if style == StyleFallback {
		return fmt.Sprintf("%s-%d.%s", base, count, ext)
	}
	return fmt.Sprintf("%s (%d).%s", base, count, ext)
}
