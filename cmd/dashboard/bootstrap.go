package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samarth5630/stock-dashboard/internal/engine"
	"github.com/samarth5630/stock-dashboard/internal/engine/engineobs"
	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/marketdata"
	"github.com/samarth5630/stock-dashboard/internal/news"
	"github.com/samarth5630/stock-dashboard/internal/store"
	"github.com/samarth5630/stock-dashboard/internal/trace"
)

// initializeSystem loads .env and sets up logging and tracing
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// initializeEngine wires market data and sentiment into the recommendation engine
func initializeEngine(ctx context.Context, cfg *store.Config) (interfaces.Engine, error) {
	md, err := marketdata.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("market data: %w", err)
	}
	logger.Info(ctx, "Market data source ready", "source", cfg.MarketData.Source, "history_days", cfg.MarketData.HistoryDays)

	sp, err := news.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("sentiment: %w", err)
	}
	if cfg.Sentiment.Enabled {
		logger.Info(ctx, "Sentiment source ready", "source", cfg.Sentiment.Source, "max_headlines", cfg.Sentiment.MaxHeadlines)
	} else {
		logger.Warn(ctx, "Sentiment disabled - every lookup scores 0.0")
	}

	return engineobs.Wrap(engine.New(cfg, md, sp)), nil
}

func initializeAccessLog() *zap.Logger {
	lc := logger.LoadConfigFromEnv()
	l, err := logger.NewAccessLogger(lc.Format, lc.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize access log: %v\n", err)
		return zap.NewNop()
	}
	return l
}
