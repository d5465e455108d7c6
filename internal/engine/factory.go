package engine

import (
	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/store"
)

func New(cfg *store.Config, md interfaces.MarketData, sp interfaces.SentimentProvider) interfaces.Engine {
	return newEngine(cfg, md, sp)
}
