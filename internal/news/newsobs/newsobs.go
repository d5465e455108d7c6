package newsobs

import (
	"context"
	"time"

	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/trace"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

type observableSentiment struct {
	provider interfaces.SentimentProvider
}

var _ interfaces.SentimentProvider = (*observableSentiment)(nil)

func Wrap(p interfaces.SentimentProvider) interfaces.SentimentProvider {
	return &observableSentiment{provider: p}
}

func (o *observableSentiment) Sentiment(ctx context.Context, symbol, company string) (types.SentimentResult, error) {
	ctx, span := trace.StartSpan(ctx, "news.Sentiment")
	defer span.End()

	start := time.Now()
	logger.DebugSkip(ctx, 1, "Fetching news sentiment", "symbol", symbol, "company", company)

	res, err := o.provider.Sentiment(ctx, symbol, company)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch news sentiment", err,
			"symbol", symbol,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return types.SentimentResult{}, err
	}

	logger.InfoSkip(ctx, 1, "News sentiment scored",
		"symbol", symbol,
		"source", res.Source,
		"headlines", len(res.Headlines),
		"score", res.Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
