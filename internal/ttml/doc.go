// Package ttml parses timed-text markup documents and flattens them into
// plain-text transcripts.
//
// The expected document shape is root > body > div > p, where each p may
// carry a begin attribute (fractional seconds) and contains span elements
// nested to arbitrary depth. Leaf spans hold the literal words; composite
// spans contribute only their children's text.
package ttml
