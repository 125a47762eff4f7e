package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Teenu24/employee-recognition-api/internal/demo"
	"github.com/Teenu24/employee-recognition-api/pkg/logger"
)

// Default configuration constants.
const (
	defaultCount = 100
	defaultRate  = 10
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:4000", "Base URL of the service")
		count   = flag.Int("count", defaultCount, "Number of recognitions to submit")
		rate    = flag.Int("rate", defaultRate, "Submissions per second (0 = unlimited)")
		seed    = flag.Int64("seed", 0, "Random seed (0 = time-based)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []demo.Option{
		demo.WithCount(*count),
		demo.WithRate(*rate),
	}
	if *seed != 0 {
		opts = append(opts, demo.WithSeed(*seed))
	}

	runner := demo.NewRunner(*baseURL, opts...)
	stats, err := runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		os.Stderr.WriteString("traffic run failed: " + err.Error() + "\n")
		return
	}

	if stats.Failed > 0 {
		os.Exit(1)
	}
}
