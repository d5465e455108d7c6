package engineobs

import (
	"context"
	"time"

	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/trace"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) Analyze(ctx context.Context, symbol string) (*types.Analysis, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Analyze")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting analysis",
		"symbol", symbol,
	)

	result, err := oe.engine.Analyze(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Analysis failed", err,
			"symbol", symbol,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Analysis completed",
		"symbol", symbol,
		"technical_signal", result.TechnicalSignal,
		"sentiment_score", result.Sentiment.Score,
		"recommendation", result.Recommendation,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}
