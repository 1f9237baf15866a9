package batch_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"podscribe/internal/batch"
	"podscribe/internal/catalog"
	"podscribe/internal/config"
	"podscribe/internal/testsupport"
)

const goodDoc = `<tt xmlns="http://www.w3.org/ns/ttml"><body><div>
  <p begin="5.7"><span>Hello</span><span>world</span></p>
  <p><span>Bye</span></p>
</div></body></tt>`

func writeSource(t *testing.T, cfg *config.Config, rel, content string) {
	t.Helper()
	path := filepath.Join(cfg.Paths.TTMLDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newRunner(t *testing.T, cfg *config.Config, podcasts []testsupport.PodcastRow, episodes []testsupport.EpisodeRow) *batch.Runner {
	t.Helper()
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	testsupport.SeedLibrary(t, cfg.Paths.DatabasePath, podcasts, episodes)

	store, err := catalog.Open(cfg.Paths.DatabasePath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.DiscardHandler)
	return batch.NewRunner(cfg, catalog.NewResolver(store, logger), logger)
}

func TestRunMetadataNaming(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg, "PodcastContentAAA/one.ttml", goodDoc)
	writeSource(t, cfg, "PodcastContentAAA/two.ttml", goodDoc)

	runner := newRunner(t, cfg,
		[]testsupport.PodcastRow{{PK: 1, UUID: "u1", Title: "Talk Show"}},
		[]testsupport.EpisodeRow{
			{Title: "Ep 1", PodcastUUID: "u1", TranscriptID: "PodcastContentAAA/one.ttml"},
			{Title: "Ep 1", PodcastUUID: "u1", TranscriptID: "PodcastContentAAA/two.ttml"},
		},
	)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Processed != 2 || stats.Failed != 0 {
		t.Fatalf("stats = %+v", stats)
	}

	first, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, "Talk Show - Ep 1.txt"))
	if err != nil {
		t.Fatalf("first transcript missing: %v", err)
	}
	if string(first) != "Hello world\n\nBye" {
		t.Errorf("content = %q", first)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "Talk Show - Ep 1 (1).txt")); err != nil {
		t.Errorf("collision transcript missing: %v", err)
	}
}

func TestRunFallbackNaming(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg, "PodcastContentXYZ/one.ttml", goodDoc)
	writeSource(t, cfg, "PodcastContentXYZ/two.ttml", goodDoc)

	runner := newRunner(t, cfg, nil, nil)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Processed != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "XYZ.txt")); err != nil {
		t.Errorf("fallback transcript missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "XYZ-1.txt")); err != nil {
		t.Errorf("fallback collision transcript missing: %v", err)
	}
}

func TestRunTimestamps(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Output.Timestamps = true
	writeSource(t, cfg, "PodcastContentTS/ep.ttml", goodDoc)

	runner := newRunner(t, cfg, nil, nil)
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, "TS.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[00:00:05] Hello world\n\nBye" {
		t.Errorf("content = %q", got)
	}
}

func TestRunIsolatesParseFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg, "PodcastContentBAD/broken.ttml", "<tt><body><div><p>")
	writeSource(t, cfg, "PodcastContentOK/good.ttml", goodDoc)

	runner := newRunner(t, cfg, nil, nil)
	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Failed != 1 || stats.Processed != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "OK.txt")); err != nil {
		t.Errorf("good document not processed: %v", err)
	}
}

func TestRunRecoversWithFallbackNaming(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg, "PodcastContentRETRY/ep.ttml", goodDoc)

	// A long multibyte podcast title survives sanitization at 200 runes but
	// exceeds the 255-byte filename limit, so the metadata-named write fails
	// and the document is retried under its fallback id.
	runner := newRunner(t, cfg,
		[]testsupport.PodcastRow{{PK: 1, UUID: "u1", Title: strings.Repeat("播", 195)}},
		[]testsupport.EpisodeRow{
			{Title: "Ep", PodcastUUID: "u1", TranscriptID: "PodcastContentRETRY/ep.ttml"},
		},
	)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Processed != 1 || stats.Failed != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	got, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, "RETRY.txt"))
	if err != nil {
		t.Fatalf("fallback transcript missing: %v", err)
	}
	if string(got) != "Hello world\n\nBye" {
		t.Errorf("content = %q", got)
	}
}

func TestRunRetryOverwritesExistingFallbackFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Output.SkipExisting = true
	writeSource(t, cfg, "PodcastContentOVR/ep.ttml", goodDoc)

	runner := newRunner(t, cfg,
		[]testsupport.PodcastRow{{PK: 1, UUID: "u1", Title: strings.Repeat("播", 195)}},
		[]testsupport.EpisodeRow{
			{Title: "Ep", PodcastUUID: "u1", TranscriptID: "PodcastContentOVR/ep.ttml"},
		},
	)
	if err := os.WriteFile(filepath.Join(cfg.Paths.OutputDir, "OVR.txt"), []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Processed != 1 || stats.Skipped != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	got, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, "OVR.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Hello world\n\nBye" {
		t.Errorf("stale fallback file not replaced: %q", got)
	}
}

func TestRunSkipExisting(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Output.SkipExisting = true
	writeSource(t, cfg, "PodcastContentSKIP/ep.ttml", goodDoc)

	runner := newRunner(t, cfg, nil, nil)
	if err := os.WriteFile(filepath.Join(cfg.Paths.OutputDir, "SKIP.txt"), []byte("already there"), 0o644); err != nil {
		t.Fatal(err)
	}

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Skipped != 1 || stats.Processed != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	got, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, "SKIP.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "already there" {
		t.Errorf("existing transcript was overwritten: %q", got)
	}
}

func TestRunMissingCacheRootIsFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := newRunner(t, cfg, nil, nil)

	if err := os.RemoveAll(cfg.Paths.TTMLDir); err != nil {
		t.Fatal(err)
	}
	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatal("expected discovery error for missing cache root")
	}
}

func TestRunDegradesWhenStoreUnreadable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg, "PodcastContentDEG/ep.ttml", goodDoc)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	// No library database seeded; every lookup errors and degrades to
	// fallback naming.
	store, err := catalog.Open(cfg.Paths.DatabasePath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.DiscardHandler)
	runner := batch.NewRunner(cfg, catalog.NewResolver(store, logger), logger)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Processed != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "DEG.txt")); err != nil {
		t.Errorf("fallback transcript missing: %v", err)
	}
}

func TestRunLockExcludesConcurrentRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSource(t, cfg, "PodcastContentLOCK/ep.ttml", goodDoc)

	runner := newRunner(t, cfg, nil, nil)

	// Take the batch lock the way Run does and hold it.
	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "podscribe.lock"))
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("take lock: ok=%v err=%v", ok, err)
	}

	if _, err := runner.Run(context.Background()); !errors.Is(err, batch.ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatal(err)
	}

	if stats, err := runner.Run(context.Background()); err != nil || stats.Processed != 1 {
		t.Fatalf("run after release: stats=%+v err=%v", stats, err)
	}
}
