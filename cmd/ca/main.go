package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"cellcore/internal/app"
	"cellcore/internal/logging"
	_ "cellcore/internal/sims/briansbrain"
	_ "cellcore/internal/sims/elementary"
	_ "cellcore/internal/sims/life"
	_ "cellcore/internal/sims/sand"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *app.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(stdout, stderr io.Writer, args []string) error {
	cfg, exit, err := app.Parse(args, stderr)
	if err != nil {
		return err
	}
	if exit {
		return nil
	}
	if _, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, stderr); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx, cfg, stdout)
}
