package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/bitop-dev/imagegen/cmd/imagegen/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := app.NewImagegenCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
