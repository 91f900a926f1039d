// Package pkg provides shared utilities for the ibmkbd firmware core.
//
// This package contains common functionality used across the identification,
// decoding, and resolution layers, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for PS/2 transport errors
//   - Component identifiers for log filtering
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with converter-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentDecoder, "pause sequence complete")
//
// # Errors
//
// Common transport errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrTimeout) {
//	    // Handle identification timeout
//	}
package pkg
