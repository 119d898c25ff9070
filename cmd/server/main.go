package main

import (
	"context"
	"os/signal"
	"syscall"

	"wallfleur-be/internal/app"

	"go.uber.org/fx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run(ctx, fx.New(app.Module()))
}
