// Package server runs the operational HTTP endpoint of a long-running
// formula process.
//
// The server wraps a caller-supplied handler in a fixed middleware chain and
// manages its lifecycle: Listen binds the address so the caller can report
// the actual port, Serve blocks until the context is cancelled and then
// shuts down gracefully within the configured timeout.
//
// # Middleware
//
// From outermost to innermost:
//
//   - RecoveryMiddleware: turns handler panics into 500 responses
//   - RequestIDMiddleware: propagates or generates X-Request-ID
//   - LoggingMiddleware: one log line per request, level by status
//   - tracing.HTTPMiddleware: a server span per request
//
// # Usage
//
//	srv := server.New(server.Config{Addr: ":9090"}, mux, logger)
//	addr, err := srv.Listen()
//	if err != nil {
//	    return err
//	}
//	fmt.Println("listening on", addr)
//	return srv.Serve(ctx)
package server
