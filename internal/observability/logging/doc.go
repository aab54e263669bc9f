// Package logging provides structured logging utilities with context propagation.
//
// Example usage:
//
//	logger := logging.New(os.Stdout, logging.Options{Level: "info"})
//	slog.SetDefault(logger)
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("processing request")
//	}
package logging
