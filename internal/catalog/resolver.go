package catalog

import (
	"context"
	"log/slog"
)

// Resolver wraps the store with the degrade-to-absent lookup policy: metadata
// is an enrichment, not a requirement, so store errors are logged and
// resolved as "no record found" instead of propagating.
type Resolver struct {
	store  *Store
	logger *slog.Logger
}

// NewResolver builds a resolver around an open store.
func NewResolver(store *Store, logger *slog.Logger) *Resolver {
	if logger != nil {
		logger = logger.With(slog.String("component", "catalog"))
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve returns the episode metadata for id, or nil when no record matches
// or the lookup fails.
func (r *Resolver) Resolve(ctx context.Context, id string) *Episode {
	if r == nil || r.store == nil {
		return nil
	}
	ep, err := r.store.EpisodeByTranscriptID(ctx, id)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("metadata lookup failed", slog.String("transcript_id", id), slog.Any("error", err))
		}
		return nil
	}
	return ep
}
