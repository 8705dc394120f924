// Package logging is StayKit's structured logging layer over log/slog.
//
// Every record carries service and version attributes; components add
// their own context with With ("component", "api" and so on). Format,
// level and destination come from the logging section of config.yaml:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "json"  # json for production, text for development
//	  output: "stdout"
//
// Secrets, tokens and passwords must never be logged.
package logging
