// Command btctx drives the btctx helper against a Bitcoin-compatible node:
// it provisions identities, funds and mines on regtest, and transfers BTC
// between identities kept in a password-sealed local store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	closeLogRotator()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
