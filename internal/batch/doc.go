// Package batch drives the discovery, metadata resolution, naming, and
// extraction of every transcript in the TTML cache.
//
// Documents are processed strictly one at a time, in discovery order. The
// library database is a shared resource owned by the Podcasts app, so the run
// holds a file lock for its duration and never queries concurrently. Each
// document gets at most two attempts: one with metadata-derived naming, then
// a degraded retry using only the path-derived fallback id. A failed document
// never stops the rest of the batch.
package batch
