package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains source, database, and output directory configuration.
type Paths struct {
	// TTMLDir is the root of the Apple Podcasts TTML cache.
	TTMLDir string `toml:"ttml_dir"`
	// DatabasePath points at the Podcasts library database (MTLibrary.sqlite).
	DatabasePath string `toml:"database_path"`
	// OutputDir receives the generated transcript files.
	OutputDir string `toml:"output_dir"`
	// LogDir receives the podscribe log file.
	LogDir string `toml:"log_dir"`
}

// Output controls how transcripts are rendered and written.
type Output struct {
	// Timestamps prefixes paragraphs with [HH:MM:SS] clock offsets.
	Timestamps bool `toml:"timestamps"`
	// SkipExisting leaves already-written transcript files untouched in
	// batch mode.
	SkipExisting bool `toml:"skip_existing"`
}

// API contains settings for fetching transcripts from the Apple Podcasts
// catalog service.
type API struct {
	TokenURL         string `toml:"token_url"`
	CatalogURL       string `toml:"catalog_url"`
	BearerToken      string `toml:"bearer_token"`
	RequestTimestamp string `toml:"request_timestamp"`
	ActionSignature  string `toml:"action_signature"`
	Storefront       string `toml:"storefront"`
	RequestTimeout   int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for podscribe.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Output  Output  `toml:"output"`
	API     API     `toml:"api"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/podscribe/config.toml")
}

// Load locates, parses, and validates a configuration file. When path is
// empty the default location is tried; a missing file yields defaults. The
// returned config has all path fields expanded. The second return value is
// the resolved path, the third reports whether a file was actually read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("inspect config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the directories podscribe writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file not found: %s", expanded)
			}
			return "", false, fmt.Errorf("inspect config file: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("inspect config file: %w", err)
	}
	return defaultPath, true, nil
}
