// Package logger provides structured logging for bootkit consumers
// using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped sub-loggers with structured fields.
//
// # Usage
//
//	log := logger.NewDefault("marketedge-api")
//	log.Info("service ready", logger.Fields("service", "db"))
package logger
