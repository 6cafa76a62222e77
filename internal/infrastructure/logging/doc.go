// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The logger is built once at process start and handed to every component
// that logs; nothing in the backend reaches for a global logger.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Backend starting", zap.String("addr", "127.0.0.1:1430"))
//	logger.Error("Failed to save file", zap.String("path", p), zap.Error(err))
package logging
