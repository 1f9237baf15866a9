package ttml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"podscribe/internal/timecode"
)

var (
	// ErrNoBody reports a document without a body element.
	ErrNoBody = errors.New("ttml: no body element")
	// ErrNoDivision reports a body without any div element.
	ErrNoDivision = errors.New("ttml: no div element in body")
)

// Struct tags use unqualified local names so both namespaced Apple TTML and
// plain documents unmarshal the same way.
type document struct {
	Body *body `xml:"body"`
}

type body struct {
	Divisions []division `xml:"div"`
}

type division struct {
	Paragraphs []paragraph `xml:"p"`
}

type paragraph struct {
	Begin string `xml:"begin,attr"`
	Spans []span `xml:"span"`
}

type span struct {
	Text     string `xml:",chardata"`
	Children []span `xml:"span"`
}

// Extract parses a complete TTML document and returns its paragraphs as
// plain-text strings in document order. Paragraphs whose flattened text is
// empty are dropped. When includeTimestamps is set, paragraphs carrying a
// begin attribute are prefixed with "[HH:MM:SS] "; paragraphs without one are
// emitted unprefixed either way.
func Extract(data []byte, includeTimestamps bool) ([]string, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse ttml: %w", err)
	}
	if doc.Body == nil {
		return nil, ErrNoBody
	}
	if len(doc.Body.Divisions) == 0 {
		return nil, ErrNoDivision
	}

	var paragraphs []string
	for _, div := range doc.Body.Divisions {
		for _, p := range div.Paragraphs {
			if len(p.Spans) == 0 {
				continue
			}
			text := flattenParagraph(p)
			if text == "" {
				continue
			}
			if includeTimestamps && p.Begin != "" {
				begin, err := strconv.ParseFloat(p.Begin, 64)
				if err != nil {
					return nil, fmt.Errorf("parse begin attribute %q: %w", p.Begin, err)
				}
				text = fmt.Sprintf("[%s] %s", timecode.FormatSeconds(begin), text)
			}
			paragraphs = append(paragraphs, text)
		}
	}
	return paragraphs, nil
}

// Render joins extracted paragraphs into the final transcript artifact,
// separated by blank lines.
func Render(paragraphs []string) string {
	return strings.Join(paragraphs, "\n\n")
}

// ExtractToFile extracts a transcript from data and writes it to outputPath,
// overwriting any existing file.
func ExtractToFile(data []byte, outputPath string, includeTimestamps bool) error {
	paragraphs, err := Extract(data, includeTimestamps)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(Render(paragraphs)), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// flattenParagraph concatenates the flattened text of every top-level span in
// order, then collapses whitespace runs and trims the result.
func flattenParagraph(p paragraph) string {
	var b strings.Builder
	for _, s := range p.Spans {
		flattenSpan(&b, s)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// flattenSpan appends a span's text. Composite spans contribute only their
// children's flattened text; leaf spans contribute their literal content plus
// a separating space.
func flattenSpan(b *strings.Builder, s span) {
	if len(s.Children) > 0 {
		for _, c := range s.Children {
			flattenSpan(b, c)
		}
		return
	}
	b.WriteString(s.Text)
	b.WriteString(" ")
}
