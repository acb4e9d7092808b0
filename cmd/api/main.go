package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/catalogwire/catalogwire/internal/engine"
	"github.com/catalogwire/catalogwire/pkg/config"
	"github.com/catalogwire/catalogwire/pkg/logger"
)

var (
	port           = flag.Int("port", 0, "HTTP port to listen on (overrides CATALOGWIRE_SERVER_HTTP_PORT)")
	catalogURL     = flag.String("catalog", "", "Catalog base URL (overrides CATALOGWIRE_CATALOG_URL)")
	logLevel       = flag.String("log-level", "info", "Minimum log level (debug, info, warn, error)")
	serviceVersion = "1.0.0"
)

const engineShutdownTimeout = 15 * time.Second

func main() {
	flag.Parse()

	log := logger.New("catalogwire", serviceVersion)
	log.SetLevel(logger.ParseLevel(*logLevel))

	cfg := config.New()
	cfg.LoadFromEnv()
	if *catalogURL != "" {
		cfg.Set("catalog.url", *catalogURL)
	}
	if *port != 0 {
		cfg.Set("server.http_port", strconv.Itoa(*port))
	}

	eng := engine.NewEngine(cfg)
	eng.SetLogger(log)

	// Create context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := eng.Start(ctx); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), engineShutdownTimeout)
	defer cancel()

	if err := eng.Stop(shutdownCtx); err != nil {
		log.Errorf("Shutdown error: %v", err)
		os.Exit(1)
	}
	log.Info("Shutdown complete")
}
