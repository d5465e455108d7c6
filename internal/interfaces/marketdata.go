package interfaces

import (
	"context"

	"github.com/samarth5630/stock-dashboard/internal/types"
)

// MarketData supplies daily price history and the display quote for a ticker.
type MarketData interface {
	// History returns at most days daily bars, oldest first.
	History(ctx context.Context, symbol string, days int) ([]types.PricePoint, error)

	// Quote returns the current display fields for the ticker.
	Quote(ctx context.Context, symbol string) (types.Quote, error)
}
