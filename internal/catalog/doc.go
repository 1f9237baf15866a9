// Package catalog reads episode and podcast metadata from the Apple Podcasts
// library database.
//
// The database is a shared resource owned by the Podcasts app. It is opened
// read-only, exactly once per run, and queried from a single sequential code
// path. The Resolver wrapper degrades every lookup failure to "no metadata"
// so callers can always fall back to identifier-based naming.
package catalog
