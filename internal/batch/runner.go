package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"podscribe/internal/catalog"
	"podscribe/internal/config"
	"podscribe/internal/discovery"
	"podscribe/internal/naming"
	"podscribe/internal/textutil"
	"podscribe/internal/ttml"
)

// Sentinel markers tag per-document failures for logging and tests. Wrapped
// errors keep the underlying cause in the chain.
var (
	// ErrLocked reports that another podscribe run already holds the batch lock.
	ErrLocked = errors.New("batch: another run is already in progress")
	// ErrRead marks a source document that could not be read.
	ErrRead = errors.New("read failure")
	// ErrParse marks a malformed or structurally unexpected source document.
	ErrParse = errors.New("parse failure")
	// ErrWrite marks a transcript that could not be written.
	ErrWrite = errors.New("write failure")
)

// Stats summarizes one batch run.
type Stats struct {
	Found     int
	Processed int
	Skipped   int
	Failed    int
}

// Runner orchestrates one sequential batch run.
type Runner struct {
	cfg      *config.Config
	resolver *catalog.Resolver
	registry *naming.Registry
	logger   *slog.Logger
}

// NewRunner builds a runner around an open metadata store. The caller owns
// the store and closes it after Run returns. The filename registry is fresh
// per runner; dedup counters never persist across runs.
func NewRunner(cfg *config.Config, resolver *catalog.Resolver, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		cfg:      cfg,
		resolver: resolver,
		registry: naming.NewRegistry(),
		logger:   logger.With(slog.String("component", "batch")),
	}
}

// Run discovers every TTML document under the configured cache root and
// extracts each one. Discovery errors are fatal; per-document failures are
// logged and skipped. The returned stats cover every discovered document.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	lock := flock.New(filepath.Join(r.cfg.Paths.LogDir, "podscribe.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return stats, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !ok {
		return stats, ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	r.logger.Info("searching for ttml files", slog.String("root", r.cfg.Paths.TTMLDir))
	docs, err := discovery.Discover(r.cfg.Paths.TTMLDir)
	if err != nil {
		return stats, err
	}
	stats.Found = len(docs)
	r.logger.Info("discovery complete", slog.Int("found", stats.Found))

	for _, doc := range docs {
		if ctx.Err() != nil {
			r.logger.Warn("run interrupted", slog.Int("remaining", stats.Found-stats.Processed-stats.Skipped-stats.Failed))
			break
		}
		switch r.processDocument(ctx, doc) {
		case outcomeProcessed:
			stats.Processed++
		case outcomeSkipped:
			stats.Skipped++
		case outcomeFailed:
			stats.Failed++
		}
	}

	r.logger.Info("batch complete",
		slog.Int("found", stats.Found),
		slog.Int("processed", stats.Processed),
		slog.Int("skipped", stats.Skipped),
		slog.Int("failed", stats.Failed),
	)
	return stats, nil
}

type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeSkipped
	outcomeFailed
)

// processDocument runs the two-attempt state machine for one document:
// metadata-derived naming first, then a degraded retry with fallback-id
// naming only.
func (r *Runner) processDocument(ctx context.Context, doc discovery.Document) outcome {
	logger := r.logger.With(slog.String("transcript_id", doc.TranscriptID))
	logger.Debug("processing document", slog.String("path", doc.Path))

	filename := r.primaryName(ctx, doc, logger)
	skipped, err := r.extract(doc, filename, r.cfg.Output.SkipExisting)
	if err == nil {
		return r.reportSuccess(logger, filename, skipped)
	}

	logger.Warn("document failed, retrying with fallback naming", slog.Any("error", err))

	// The skip check applies to the primary attempt only; a fallback-named
	// file left by an earlier degraded run is overwritten, not skipped.
	filename = r.registry.Claim(doc.FallbackID, "txt", naming.StyleFallback)
	skipped, err = r.extract(doc, filename, false)
	if err != nil {
		logger.Error("document failed after fallback retry", slog.Any("error", err))
		return outcomeFailed
	}
	return r.reportSuccess(logger, filename, skipped)
}

func (r *Runner) reportSuccess(logger *slog.Logger, filename string, skipped bool) outcome {
	if skipped {
		logger.Debug("skipping existing transcript", slog.String("file", filename))
		return outcomeSkipped
	}
	logger.Info("transcript saved", slog.String("file", filename))
	return outcomeProcessed
}

// primaryName resolves metadata for the document and claims the output
// filename: "<podcast> - <episode>" when both titles resolve, fallback id
// otherwise.
func (r *Runner) primaryName(ctx context.Context, doc discovery.Document, logger *slog.Logger) string {
	meta := r.resolver.Resolve(ctx, doc.TranscriptID)
	if meta.HasTitles() {
		base := textutil.SanitizeFileName(meta.PodcastTitle + " - " + meta.EpisodeTitle)
		logger.Debug("metadata resolved",
			slog.String("podcast", meta.PodcastTitle),
			slog.String("episode", meta.EpisodeTitle),
		)
		return r.registry.Claim(base, "txt", naming.StyleMetadata)
	}
	logger.Debug("no metadata, using fallback id", slog.String("fallback_id", doc.FallbackID))
	return r.registry.Claim(doc.FallbackID, "txt", naming.StyleFallback)
}

// extract reads the source document and writes the transcript into the
// output directory. The skipped return is true when allowSkip is set and the
// destination already exists.
func (r *Runner) extract(doc discovery.Document, filename string, allowSkip bool) (skipped bool, err error) {
	outputPath := filepath.Join(r.cfg.Paths.OutputDir, filename)

	if allowSkip {
		if _, statErr := os.Stat(outputPath); statErr == nil {
			return true, nil
		}
	}

	data, err := os.ReadFile(doc.Path)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrRead, err)
	}
	paragraphs, err := ttml.Extract(data, r.cfg.Output.Timestamps)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if err := os.WriteFile(outputPath, []byte(ttml.Render(paragraphs)), 0o644); err != nil {
		return false, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return false, nil
}
