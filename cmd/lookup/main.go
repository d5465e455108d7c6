package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/samarth5630/stock-dashboard/internal/engine"
	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/marketdata"
	"github.com/samarth5630/stock-dashboard/internal/news"
	"github.com/samarth5630/stock-dashboard/internal/store"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	symbol := flag.String("symbol", "", "stock symbol to analyze (required)")
	format := flag.String("format", "json", "output format: json or text")
	timeout := flag.Duration("timeout", 60*time.Second, "overall lookup timeout")
	flag.Parse()

	if *symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -symbol is required")
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	if err := logger.InitWithConfig(logger.LogConfig{Level: "WARN", Format: "text", Output: os.Stderr}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	sym, err := marketdata.NormalizeSymbol(*symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	md, err := marketdata.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating market data source: %v\n", err)
		os.Exit(1)
	}
	sp, err := news.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating sentiment provider: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	analysis, err := engine.New(cfg, md, sp).Analyze(ctx, sym)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "text":
		printText(analysis)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis.Flat()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			os.Exit(1)
		}
	}
}

func printText(a *types.Analysis) {
	q := a.Quote
	fmt.Printf("%s (%s)\n", q.DisplayName(), a.Symbol)
	fmt.Println("─────────────────────────────────────────────")
	fmt.Printf("Current Price    %.2f %s\n", q.CurrentPrice, q.Currency)
	fmt.Printf("52 Week High     %.2f\n", q.FiftyTwoWeekHigh)
	fmt.Printf("52 Week Low      %.2f\n", q.FiftyTwoWeekLow)
	fmt.Printf("MA%-3d            %.2f\n", a.ShortWindow, a.MAShort)
	fmt.Printf("MA%-3d            %.2f\n", a.LongWindow, a.MALong)
	fmt.Printf("Tech Signal      %s\n", a.TechnicalSignal)
	fmt.Printf("Sentiment Score  %.2f (%s)\n", a.Sentiment.Score, a.Sentiment.Source)
	fmt.Printf("Recommendation   %s\n", a.Recommendation)
}
