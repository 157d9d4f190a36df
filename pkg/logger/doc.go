// Package logger provides a thin factory around Go's slog package with
// functional options for configuration and helper attribute constructors.
//
// The factory keeps structured logging consistent across the application:
//
//	log := logger.New(
//	    logger.WithDevelopment("redispanel"),
//	)
//	logger.SetAsDefault(log)
//
//	log.Info("session opened",
//	    logger.Component("registry"),
//	    logger.ConnectionID("local"),
//	)
//
// Helper constructors such as Error, Component and ConnectionID live in
// attr.go and keep attribute naming consistent across the codebase.
package logger
