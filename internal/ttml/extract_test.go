package ttml

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<tt xmlns="http://www.w3.org/ns/ttml">
  <body>
    <div>
      <p begin="5.7"><span>Hello</span><span>world</span></p>
      <p><span>Bye</span></p>
    </div>
  </body>
</tt>`

func TestExtractWithoutTimestamps(t *testing.T) {
	paragraphs, err := Extract([]byte(sampleDoc), false)
	if err != nil {
		t.Fatal(err)
	}
	got := Render(paragraphs)
	want := "Hello world\n\nBye"
	if got != want {
		t.Errorf("transcript = %q, want %q", got, want)
	}
}

func TestExtractWithTimestamps(t *testing.T) {
	paragraphs, err := Extract([]byte(sampleDoc), true)
	if err != nil {
		t.Fatal(err)
	}
	got := Render(paragraphs)
	want := "[00:00:05] Hello world\n\nBye"
	if got != want {
		t.Errorf("transcript = %q, want %q", got, want)
	}
}

func TestExtractNestedSpans(t *testing.T) {
	doc := `<tt><body><div>
      <p begin="0.0">
        <span>
          <span>Deeply</span>
          <span><span>nested</span><span>words</span></span>
        </span>
        <span>here</span>
      </p>
    </div></body></tt>`
	paragraphs, err := Extract([]byte(doc), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(paragraphs) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(paragraphs))
	}
	if paragraphs[0] != "Deeply nested words here" {
		t.Errorf("paragraph = %q, want %q", paragraphs[0], "Deeply nested words here")
	}
}

func TestExtractSkipsEmptyParagraphs(t *testing.T) {
	doc := `<tt><body><div>
      <p begin="1.0"><span>  </span><span></span></p>
      <p begin="2.0"><span>kept</span></p>
      <p begin="3.0"></p>
    </div></body></tt>`
	paragraphs, err := Extract([]byte(doc), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(paragraphs) != 1 || paragraphs[0] != "kept" {
		t.Errorf("paragraphs = %q, want just %q", paragraphs, "kept")
	}
}

func TestExtractProcessesAllDivisions(t *testing.T) {
	doc := `<tt><body>
      <div><p><span>first</span></p></div>
      <div><p><span>second</span></p></div>
    </body></tt>`
	paragraphs, err := Extract([]byte(doc), false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "second"}
	if len(paragraphs) != len(want) {
		t.Fatalf("got %d paragraphs, want %d", len(paragraphs), len(want))
	}
	for i := range want {
		if paragraphs[i] != want[i] {
			t.Errorf("paragraph[%d] = %q, want %q", i, paragraphs[i], want[i])
		}
	}
}

func TestExtractMissingTimestampStaysUnprefixed(t *testing.T) {
	doc := `<tt><body><div><p><span>no clock</span></p></div></body></tt>`
	paragraphs, err := Extract([]byte(doc), true)
	if err != nil {
		t.Fatal(err)
	}
	if len(paragraphs) != 1 || strings.HasPrefix(paragraphs[0], "[") {
		t.Errorf("paragraphs = %q, want unprefixed %q", paragraphs, "no clock")
	}
}

func TestExtractStructuralErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"no body", `<tt><head/></tt>`, ErrNoBody},
		{"no div", `<tt><body></body></tt>`, ErrNoDivision},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Extract([]byte(tc.doc), false); !errors.Is(err, tc.want) {
				t.Errorf("Extract error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestExtractMalformedDocument(t *testing.T) {
	if _, err := Extract([]byte(`<tt><body><div><p>`), false); err == nil {
		t.Fatal("expected parse error for truncated document")
	}
}

func TestExtractToFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "transcript.txt")
	if err := os.WriteFile(out, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ExtractToFile([]byte(sampleDoc), out, false); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Hello world\n\nBye" {
		t.Errorf("file content = %q", got)
	}
}
