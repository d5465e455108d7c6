package marketdata

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/ta"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

var staticNames = map[string]string{
	"RELIANCE":  "Reliance Industries Limited",
	"TCS":       "Tata Consultancy Services Limited",
	"INFY":      "Infosys Limited",
	"HDFCBANK":  "HDFC Bank Limited",
	"ICICIBANK": "ICICI Bank Limited",
	"SBIN":      "State Bank of India",
	"ITC":       "ITC Limited",
	"WIPRO":     "Wipro Limited",
}

// StaticSource generates a reproducible random-walk series per symbol. It backs
// offline demos and tests; the same symbol and end date always give the same bars.
type StaticSource struct {
	end time.Time
}

var _ interfaces.MarketData = (*StaticSource)(nil)

// NewStaticSource anchors the series at end. A zero end uses today's date.
func NewStaticSource(end time.Time) *StaticSource {
	if end.IsZero() {
		end = time.Now()
	}
	y, m, d := end.UTC().Date()
	return &StaticSource{end: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func seed(symbol string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))
	return h.Sum64()
}

func (s *StaticSource) series(symbol string, days int) []types.PricePoint {
	sd := seed(symbol)
	rng := rand.New(rand.NewPCG(sd, sd>>1|1))

	price := 100 + float64(sd%4000)
	drift := (rng.Float64() - 0.5) * 0.002

	// Generate backwards from the anchor so the latest bars stay stable as days grows.
	out := make([]types.PricePoint, days)
	day := s.end
	for i := days - 1; i >= 0; i-- {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, -1)
		}
		move := drift + rng.NormFloat64()*0.015
		open := price / (1 + move)
		hi := math.Max(open, price) * (1 + rng.Float64()*0.01)
		lo := math.Min(open, price) * (1 - rng.Float64()*0.01)
		out[i] = types.PricePoint{
			Time:   day,
			Open:   round2(open),
			High:   round2(hi),
			Low:    round2(lo),
			Close:  round2(price),
			Volume: float64(100000 + rng.IntN(5000000)),
		}
		price = open
		day = day.AddDate(0, 0, -1)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *StaticSource) History(ctx context.Context, symbol string, days int) ([]types.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if days <= 0 {
		return nil, nil
	}
	return s.series(symbol, days), nil
}

func (s *StaticSource) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	if err := ctx.Err(); err != nil {
		return types.Quote{}, err
	}
	bars := s.series(symbol, tradingDaysPerYear)
	closes := types.Closes(bars)
	hi, lo, _ := ta.Range(closes, tradingDaysPerYear)
	last := closes[len(closes)-1]

	_, base := Exchange(symbol)
	name := staticNames[base]
	if name == "" && base != "" {
		name = base[:1] + strings.ToLower(base[1:]) + " Limited"
	}

	shares := float64(seed(symbol)%9000+1000) * 1e6
	return types.Quote{
		Symbol:           symbol,
		LongName:         name,
		Currency:         "INR",
		CurrentPrice:     last,
		FiftyTwoWeekHigh: hi,
		FiftyTwoWeekLow:  lo,
		MarketCap:        math.Round(last * shares),
	}, nil
}
