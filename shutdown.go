package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// setupGracefulShutdown returns a context that is cancelled on SIGINT or
// SIGTERM, aborting an in-flight webhook request.
func setupGracefulShutdown(logger *Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Warn("Received shutdown signal, aborting request", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
