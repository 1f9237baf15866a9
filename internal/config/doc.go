// Package config loads, normalizes, and validates podscribe configuration.
//
// It supplies repository defaults (the Apple Podcasts group-container paths),
// expands tilde shortcuts, reads TOML files, and exposes every knob the CLI
// needs in one place. Always obtain settings through Load so downstream code
// receives expanded paths and clear validation errors.
package config
