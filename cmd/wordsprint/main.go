// Command wordsprint serves the vocabulary drill API and offers offline
// helpers for word lists and article generation.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("wordsprint failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}
