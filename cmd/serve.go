package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/web/server"
)

// shutdownTimeout bounds how long in-flight requests may take once serving stops
const shutdownTimeout = 5 * time.Second

// Serve runs the browser preview until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	srv := server.NewServer()
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx.String("addr"))
	}()
	logger.Noticef("visit http://%s to start rendering", ctx.String("addr"))

	interrupt, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-interrupt.Done():
	}

	logger.Notice("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
