package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// withSignals returns a context that is cancelled on the first SIGINT or SIGTERM.
// A second signal calls forceExit. stop releases the handler.
func withSignals(parent context.Context, stderr io.Writer, forceExit func()) (ctx context.Context, stop func()) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	stopped := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			fmt.Fprintf(stderr, "received %v, stopping (send again to force)\n", sig)
			cancel()
		case <-stopped:
			return
		}

		select {
		case sig := <-sigCh:
			fmt.Fprintf(stderr, "received second %v, forcing exit\n", sig)
			forceExit()
		case <-stopped:
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		close(stopped)
		cancel()
	}
}
