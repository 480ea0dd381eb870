// File: cmd/pagelens/main.go

// Pagelens is an MCP server exposing browser page-analysis tools over stdio.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/xkilldash9x/pagelens/cmd"
	"github.com/xkilldash9x/pagelens/internal/observability"
)

func main() {
	// Listen for interrupt signals so in-flight browser sessions are released
	// through the normal cancellation path.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	observability.Sync()

	if err != nil && !errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
}
