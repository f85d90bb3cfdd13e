package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// WithLifecycle derives a context canceled on SIGINT or SIGTERM, or once
// timeout elapses when it is positive. The returned cancel releases the
// signal handler and the timer and must always be called.
func WithLifecycle(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}
