package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/preserve/internal/feedgen"
	"github.com/okian/preserve/pkg/logger"
)

const defaultNumRows = 40

func main() {
	var (
		addr    = flag.String("addr", ":9091", "Listen address for the synthetic feeds")
		numRows = flag.Int("rows", defaultNumRows, "Number of rows per sheet")
		lat     = flag.Float64("lat", 39.5, "Base latitude for generated properties")
		lon     = flag.Float64("lon", -84.3, "Base longitude for generated properties")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &feedgen.Config{
		Addr:    *addr,
		NumRows: *numRows,
		Seed:    time.Now(),
		BasePoint: feedgen.BasePoint{
			Latitude:  *lat,
			Longitude: *lon,
		},
	}

	if err := feedgen.Serve(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "feedgen failed", logger.Error(err))
		os.Exit(1)
	}
}
