// Package sigctx provides a root context that is canceled by SIGINT or
// SIGTERM, so a ctrl-c mid-run unwinds through the normal error paths.
package sigctx

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func New() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}
