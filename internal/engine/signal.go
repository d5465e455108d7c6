package engine

import (
	"fmt"

	"github.com/samarth5630/stock-dashboard/internal/ta"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

const (
	DefaultShortWindow = 50
	DefaultLongWindow  = 200
)

// ComputeSignal classifies the crossover of the trailing short and long moving
// averages at the most recent close. Equal averages yield Hold.
func ComputeSignal(closes []float64, shortWindow, longWindow int) (types.TechnicalSignal, error) {
	maShort, maLong, err := movingAverages(closes, shortWindow, longWindow)
	if err != nil {
		return "", err
	}
	return classify(maShort, maLong), nil
}

func movingAverages(closes []float64, shortWindow, longWindow int) (float64, float64, error) {
	if shortWindow <= 0 || longWindow <= 0 || shortWindow > longWindow {
		return 0, 0, fmt.Errorf("%w: short=%d long=%d", ErrInvalidWindow, shortWindow, longWindow)
	}
	if len(closes) < longWindow {
		return 0, 0, fmt.Errorf("%w: have %d closes, need %d", ErrInsufficientHistory, len(closes), longWindow)
	}
	return ta.SMA(closes, shortWindow), ta.SMA(closes, longWindow), nil
}

func classify(maShort, maLong float64) types.TechnicalSignal {
	switch {
	case maShort > maLong:
		return types.SignalBuy
	case maShort < maLong:
		return types.SignalSell
	default:
		return types.SignalHold
	}
}
