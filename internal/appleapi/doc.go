// Package appleapi downloads episode transcripts from the Apple Podcasts
// catalog service.
//
// Fetching is a two-step flow: look up the transcript asset for an episode's
// store track id, then download the referenced TTML file. Requests are
// authenticated with a bearer token, either supplied directly in config or
// minted from the token service using a captured timestamp/signature pair.
package appleapi
