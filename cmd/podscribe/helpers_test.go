package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

type testPaths struct {
	configPath string
	ttmlDir    string
	dbPath     string
	outputDir  string
}

func writeTestConfig(t *testing.T) testPaths {
	t.Helper()
	base := t.TempDir()
	paths := testPaths{
		configPath: filepath.Join(base, "config.toml"),
		ttmlDir:    filepath.Join(base, "ttml"),
		dbPath:     filepath.Join(base, "MTLibrary.sqlite"),
		outputDir:  filepath.Join(base, "out"),
	}
	content := `
[paths]
ttml_dir = "` + paths.ttmlDir + `"
database_path = "` + paths.dbPath + `"
output_dir = "` + paths.outputDir + `"
log_dir = "` + filepath.Join(base, "logs") + `"
`
	if err := os.WriteFile(paths.configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(paths.ttmlDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return paths
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
