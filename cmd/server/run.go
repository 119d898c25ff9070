package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
)

var exit = os.Exit

func run(ctx context.Context, application *fx.App) {
	if err := serve(ctx, application, os.Stderr); err != nil {
		exit(1)
	}
}

// serve starts the app and blocks until ctx is cancelled or the app asks to
// shut down.
func serve(ctx context.Context, application *fx.App, stderr io.Writer) error {
	if err := application.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "failed to start application: %v\n", err)
		return err
	}

	select {
	case <-ctx.Done():
	case <-application.Done():
	}

	if err := application.Stop(context.Background()); err != nil {
		fmt.Fprintf(stderr, "failed to stop application: %v\n", err)
		return err
	}
	return nil
}
