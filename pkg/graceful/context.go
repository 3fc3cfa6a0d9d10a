package graceful

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// ErrShutdown is the cancellation cause recorded when a termination signal arrives.
var ErrShutdown = fmt.Errorf("shutdown requested")

// Context returns a context canceled on SIGINT or SIGTERM. The cause of the
// cancellation wraps ErrShutdown and names the signal. Calling the returned
// cancel func stops listening for signals.
func Context(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelCause := context.WithCancelCause(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Printf("Received %s, starting graceful shutdown...", sig)
			cancelCause(fmt.Errorf("%w: %s", ErrShutdown, sig))
		case <-ctx.Done():
		}
	}()

	return ctx, func() { cancelCause(nil) }
}
