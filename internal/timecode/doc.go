// Package timecode formats playback offsets as clock timestamps.
package timecode
