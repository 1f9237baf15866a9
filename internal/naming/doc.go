// Package naming assigns collision-free output filenames within a single
// batch run.
package naming
