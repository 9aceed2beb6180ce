package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/wanderlust/internal/client/cli"
	"github.com/iudanet/wanderlust/internal/client/iocli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := cli.New(iocli.NewStdio(), cli.DefaultBuilder).Root(version())
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		// cobra уже напечатал ошибку
		os.Exit(1)
	}
}

func version() string {
	return fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)
}
