package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/apex/log"

	"cellcore/internal/app"
	"cellcore/internal/logging"
	"cellcore/internal/sweep"
	"cellcore/internal/topology"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *app.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	opts := sweep.DefaultOptions()
	fs := flag.NewFlagSet("rule-sweep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.From, "from", opts.From, "first rule to sweep")
	fs.IntVar(&opts.To, "to", opts.To, "last rule to sweep")
	fs.IntVar(&opts.Width, "width", opts.Width, "row width")
	fs.IntVar(&opts.Height, "height", opts.Height, "number of rows (generations + 1)")
	fs.BoolVar(&opts.Random, "random", opts.Random, "randomize the first row instead of a single centre cell")
	fs.Int64Var(&opts.Seed, "seed", opts.Seed, "seed for -random")
	fs.IntVar(&opts.Workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	edge := fs.String("edge", "bounded", "edge policy (bounded, toroidal)")
	top := fs.Int("top", 10, "print the N rules with the most live cells (-1 = all, by rule)")
	logLevel := fs.String("log-level", "info", "log level")
	logFormat := fs.String("log-format", "text", "log format (text, json, discard)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &app.ExitError{Code: 2, Message: err.Error()}
	}

	logger, err := logging.Setup(*logLevel, *logFormat, stderr)
	if err != nil {
		return &app.ExitError{Code: 2, Message: err.Error()}
	}
	if opts.Edge, err = topology.ParseEdge(*edge); err != nil {
		return &app.ExitError{Code: 2, Message: err.Error()}
	}
	if err := opts.Validate(); err != nil {
		return &app.ExitError{Code: 2, Message: err.Error()}
	}
	opts.Logger = logger

	logger.WithFields(log.Fields{
		"from":    opts.From,
		"to":      opts.To,
		"size":    fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"workers": opts.Workers,
	}).Info("sweeping elementary rules")

	results, err := sweep.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	return sweep.Summarize(results, *top).Write(stdout)
}
