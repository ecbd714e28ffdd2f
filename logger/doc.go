// Package logger provides structured logging on top of zerolog.
//
// Loggers are scoped by component and enriched from the context with the
// request ID and the active trace and span. Field names used across the
// mapping engine live in fields.go so log queries stay stable.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("rest")
//	log.WithContext(ctx).Debug("request built", logger.Fields(logger.FieldKind, "get"))
package logger
