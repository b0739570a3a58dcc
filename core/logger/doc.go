// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for both interactive CLI use
// (console encoding with colored levels) and non-interactive runs (json).
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("catalog loaded")
package logger
