// Package logging builds the slog loggers used across podscribe.
//
// Two formats are supported: a compact console format for interactive runs
// (colored when the terminal allows it) and JSON for machine consumption.
// Output is teed to stderr and the log file under the configured log
// directory.
package logging
