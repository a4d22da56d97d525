package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophprofile/internal/client/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A second interrupt falls through to the default handler.
	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := cli.Execute(ctx); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}
