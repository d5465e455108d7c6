package interfaces

import (
	"context"

	"github.com/samarth5630/stock-dashboard/internal/types"
)

// HeadlineSource returns raw news text about a company.
type HeadlineSource interface {
	Name() string
	Headlines(ctx context.Context, symbol, company string, limit int) ([]types.Headline, error)
}

// Scorer maps a piece of text to a compound polarity in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

type SentimentProvider interface {
	Sentiment(ctx context.Context, symbol, company string) (types.SentimentResult, error)
}
