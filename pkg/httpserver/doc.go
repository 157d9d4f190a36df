// Package httpserver provides a small wrapper around net/http.Server with
// graceful shutdown, signal handling, and functional options.
//
// The server stops on context cancellation, SIGINT/SIGTERM, or listener
// failure, whichever happens first:
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
package httpserver
