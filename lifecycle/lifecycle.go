// Package lifecycle provides signal-driven cancellation for migration runs.
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Context returns a context cancelled on SIGINT or SIGTERM. Running
// migrators stop at the next batch boundary and their partial run is still
// journaled. A second signal terminates immediately via the default handler.
func Context(parent context.Context, log logrus.FieldLogger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			if log != nil {
				log.WithField("signal", sig.String()).Warn("shutdown requested, stopping at batch boundary")
			}
			signal.Stop(sigChan)
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
		}
	}()

	return ctx, cancel
}
