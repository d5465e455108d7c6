package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/server"
	"github.com/samarth5630/stock-dashboard/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = trace.Shutdown(shutdownCtx)
	}()

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		log.Fatal(err)
	}

	eng, err := initializeEngine(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to initialize engine", err)
		log.Fatal(err)
	}

	access := initializeAccessLog()
	defer func() { _ = access.Sync() }()

	srv, err := server.New(cfg, eng, access)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to build server", err)
		log.Fatal(err)
	}

	if err := srv.Run(ctx); err != nil {
		logger.ErrorWithErr(ctx, "Server stopped with error", err)
		log.Fatal(err)
	}
	logger.Info(ctx, "Dashboard stopped")
}
