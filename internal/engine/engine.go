package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/store"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

type Engine struct {
	market      interfaces.MarketData
	sentiment   interfaces.SentimentProvider
	shortWindow int
	longWindow  int
	historyDays int
	now         func() time.Time
}

func newEngine(cfg *store.Config, md interfaces.MarketData, sp interfaces.SentimentProvider) *Engine {
	e := &Engine{
		market:      md,
		sentiment:   sp,
		shortWindow: DefaultShortWindow,
		longWindow:  DefaultLongWindow,
		historyDays: 300,
		now:         time.Now,
	}
	if cfg != nil {
		if cfg.Signal.ShortWindow > 0 {
			e.shortWindow = cfg.Signal.ShortWindow
		}
		if cfg.Signal.LongWindow > 0 {
			e.longWindow = cfg.Signal.LongWindow
		}
		if cfg.MarketData.HistoryDays > 0 {
			e.historyDays = cfg.MarketData.HistoryDays
		}
	}
	return e
}

// Analyze runs one lookup: history, quote, sentiment, signal, recommendation.
// Any collaborator failure aborts the lookup; nothing partial is returned.
func (e *Engine) Analyze(ctx context.Context, symbol string) (*types.Analysis, error) {
	op := logger.StartOperation(ctx, "engine.analyze", "symbol", symbol)
	ctx = op.GetContext()

	history, err := e.market.History(ctx, symbol, e.historyDays)
	if err != nil {
		err = fmt.Errorf("%w: history for %s: %w", ErrDataFetch, symbol, err)
		op.EndWithError(err)
		return nil, err
	}
	logger.Debug(ctx, "History fetched", "symbol", symbol, "count", len(history))

	quote, err := e.market.Quote(ctx, symbol)
	if err != nil {
		err = fmt.Errorf("%w: quote for %s: %w", ErrDataFetch, symbol, err)
		op.EndWithError(err)
		return nil, err
	}
	if quote.Symbol == "" {
		quote.Symbol = symbol
	}

	sent, err := e.sentiment.Sentiment(ctx, symbol, quote.DisplayName())
	if err != nil {
		err = fmt.Errorf("%w: sentiment for %s: %w", ErrDataFetch, symbol, err)
		op.EndWithError(err)
		return nil, err
	}

	closes := types.Closes(history)
	maShort, maLong, err := movingAverages(closes, e.shortWindow, e.longWindow)
	if err != nil {
		op.EndWithError(err, "closes", len(closes))
		return nil, err
	}
	signal := classify(maShort, maLong)
	rec := Combine(signal, sent.Score)

	logger.Recommendation(ctx, symbol, string(signal), sent.Score, string(rec),
		"ma_short", maShort,
		"ma_long", maLong,
		"headlines", len(sent.Headlines),
	)
	op.End("recommendation", string(rec))

	return &types.Analysis{
		Symbol:          symbol,
		Quote:           quote,
		ShortWindow:     e.shortWindow,
		LongWindow:      e.longWindow,
		MAShort:         maShort,
		MALong:          maLong,
		TechnicalSignal: signal,
		Sentiment:       sent,
		Recommendation:  rec,
		History:         history,
		GeneratedAt:     e.now(),
	}, nil
}
