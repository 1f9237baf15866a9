// Package textutil provides text processing utilities for safe filesystem
// naming of generated transcripts.
package textutil
