package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
)

// requiredPrefix marks identifiers belonging to podcast episode content;
// anything else in the cache tree is ignored.
const requiredPrefix = "PodcastContent"

// UnknownFallbackID is used when no content id can be extracted from a path.
const UnknownFallbackID = "unknown"

var (
	// duplicateSuffixPattern matches the cache's duplicate-instance naming
	// quirk: an already .ttml-suffixed name with a trailing "-<digits>.ttml"
	// appended. Both instances carry the same canonical identifier.
	duplicateSuffixPattern = regexp.MustCompile(`(.+\.ttml)-\d+\.ttml$`)
	contentIDPattern       = regexp.MustCompile(`PodcastContent([^/]+)`)
)

// Document is one discovered TTML source file.
type Document struct {
	// Path is the absolute path of the source file.
	Path string
	// TranscriptID is the canonical identifier derived from the path
	// relative to the cache root.
	TranscriptID string
	// FallbackID names the output file when no metadata resolves.
	FallbackID string
}

// NormalizeIdentifier collapses the duplicate-instance suffix so both copies
// of a duplicated file map to the same canonical identifier.
func NormalizeIdentifier(relPath string) string {
	return duplicateSuffixPattern.ReplaceAllString(relPath, "$1")
}

// Discover walks root recursively and returns every eligible TTML document in
// lexical path order. Traversal errors abort the whole pass; the caller must
// not process a partial listing.
func Discover(root string) ([]Document, error) {
	var docs []Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".ttml") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		id := NormalizeIdentifier(filepath.ToSlash(rel))
		if !strings.HasPrefix(id, requiredPrefix) {
			return nil
		}
		docs = append(docs, Document{
			Path:         path,
			TranscriptID: id,
			FallbackID:   fallbackID(id),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover ttml files under %s: %w", root, err)
	}
	return docs, nil
}

func fallbackID(id string) string {
	m := contentIDPattern.FindStringSubmatch(id)
	if m == nil {
		return UnknownFallbackID
	}
	return m[1]
}
