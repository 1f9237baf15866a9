// Package discovery locates TTML source documents under the Apple Podcasts
// cache and derives the transcript identifier used to correlate each one with
// library metadata.
package discovery
