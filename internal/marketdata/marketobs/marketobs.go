package marketobs

import (
	"context"

	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/trace"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

// observableMarketData wraps a MarketData source with logging and tracing
type observableMarketData struct {
	source string
	md     interfaces.MarketData
}

var _ interfaces.MarketData = (*observableMarketData)(nil)

// Wrap wraps a market data source; source names it in log lines.
func Wrap(source string, md interfaces.MarketData) interfaces.MarketData {
	return &observableMarketData{
		source: source,
		md:     md,
	}
}

func (o *observableMarketData) History(ctx context.Context, symbol string, days int) ([]types.PricePoint, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.History")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching price history", "source", o.source, "symbol", symbol, "days", days)

	bars, err := o.md.History(ctx, symbol, days)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch price history", err, "source", o.source, "symbol", symbol, "days", days)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Price history fetched", "source", o.source, "symbol", symbol, "count", len(bars))
	return bars, nil
}

func (o *observableMarketData) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.Quote")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching quote", "source", o.source, "symbol", symbol)

	q, err := o.md.Quote(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch quote", err, "source", o.source, "symbol", symbol)
		return types.Quote{}, err
	}

	logger.DebugSkip(ctx, 1, "Quote fetched", "source", o.source, "symbol", symbol, "price", q.CurrentPrice)
	return q, nil
}
