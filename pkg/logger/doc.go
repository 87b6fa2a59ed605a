// Package logger provides a small factory over log/slog plus typed attribute
// helpers used across authkit packages.
//
// The helpers keep attribute keys consistent ("error", "component",
// "provider", ...) and tolerate zero values by returning empty attributes,
// so call sites never need nil guards.
//
//	log := logger.New(logger.WithFormat(logger.FormatJSON))
//	log.Error("token exchange failed", logger.Provider("facebook"), logger.Error(err))
package logger
