// Package logging provides structured logging for central-core components.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across hub and vault binaries.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured via the LoggingConfig section:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("starting discovery", "base_url", cfg.HA.BaseURL)
//	logger.Error("discovery failed", "error", err)
//
// Never log secrets: access tokens and broker passwords stay out of
// log fields.
package logging
