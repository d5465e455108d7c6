package engine

import "github.com/samarth5630/stock-dashboard/internal/types"

const (
	strongBuyThreshold  = 0.1
	strongSellThreshold = -0.1
)

// Combine blends the technical signal with the aggregate sentiment. Sentiment
// only strengthens a directional signal; it never flips or creates one.
func Combine(signal types.TechnicalSignal, sentiment float64) types.Recommendation {
	switch {
	case signal == types.SignalBuy && sentiment > strongBuyThreshold:
		return types.RecommendationStrongBuy
	case signal == types.SignalBuy:
		return types.RecommendationBuy
	case signal == types.SignalSell && sentiment < strongSellThreshold:
		return types.RecommendationStrongSell
	case signal == types.SignalSell:
		return types.RecommendationSell
	default:
		return types.RecommendationHold
	}
}
