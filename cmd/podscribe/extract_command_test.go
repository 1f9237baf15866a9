package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDoc = `<tt xmlns="http://www.w3.org/ns/ttml"><body><div>
  <p begin="5.7"><span>Hello</span><span>world</span></p>
  <p><span>Bye</span></p>
</div></body></tt>`

func TestExtractCommand(t *testing.T) {
	paths := writeTestConfig(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.ttml")
	out := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(in, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	output, err := runCommand(t, "--config", paths.configPath, "extract", in, out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output, "Transcript saved to") {
		t.Errorf("output = %q", output)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Hello world\n\nBye" {
		t.Errorf("transcript = %q", got)
	}
}

func TestExtractCommandTimestamps(t *testing.T) {
	paths := writeTestConfig(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.ttml")
	out := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(in, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "--config", paths.configPath, "extract", "--timestamps", in, out); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[00:00:05] Hello world\n\nBye" {
		t.Errorf("transcript = %q", got)
	}
}

func TestExtractCommandBadInput(t *testing.T) {
	paths := writeTestConfig(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.ttml")
	if err := os.WriteFile(in, []byte("<not-ttml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "--config", paths.configPath, "extract", in, filepath.Join(dir, "out.txt")); err == nil {
		t.Fatal("expected error for malformed input")
	}
}
