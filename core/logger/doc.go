// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework.
//
// # Correlation
//
// Two helpers attach correlation ids:
//   - WithRayID extracts the RayID set by the rayid middleware from a Fiber context,
//     so all logs of one request can be correlated.
//   - WithRunID tags a logger with a fresh uuid for one generation run, so the
//     plan, delete, write and manifest logs of a run can be grouped.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Generation started")
//
//	runLog, runID := logger.WithRunID(log)
//	runLog.Info("Reconciling", zap.String("target", dir))
package logger
