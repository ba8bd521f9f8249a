// Package log provides a structured build trace for project builds.
//
// This package defines the Logger interface and Event types for recording what
// a build did: which documents were streamed, optionally every element, the
// error that aborted a build and the entity counts of the finished project. It
// is separate from operational logging (slog) - the trace is a complete
// machine-readable record for debugging malformed archives.
//
// # Basic Usage
//
// The parser is configured with a Logger implementation:
//
//	// For development: log to console via slog
//	parser.Trace = log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to binary file
//	parser.Trace, _ = log.NewFileLogger("build.etrace")
//
//	// Both: use MultiLogger
//	parser.Trace = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Trace files use CBOR encoding with .etrace extension. The etsproj trace
// command reads and filters them.
package log
