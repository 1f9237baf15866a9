// Package testsupport provides shared helpers for package tests: temp-dir
// seeded configs and minimal Apple Podcasts library database fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"podscribe/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.TTMLDir = filepath.Join(base, "ttml")
	cfg.Paths.DatabasePath = filepath.Join(base, "MTLibrary.sqlite")
	cfg.Paths.OutputDir = filepath.Join(base, "transcripts")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	return &cfg
}
