package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			if strings.HasPrefix(err.Error(), "unknown command") {
				fmt.Fprintln(os.Stderr, "Run 'audiocourse --help' for usage.")
			}
		}
		os.Exit(1)
	}
}
