package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/ta"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

// kiteAPI is the slice of Kite Connect the dashboard needs.
type kiteAPI interface {
	instrument(key string) (token int, lastPrice float64, err error)
	dailyBars(token int, from, to time.Time) ([]types.PricePoint, error)
}

type kiteClient struct {
	kc *kiteconnect.Client
}

func (c *kiteClient) instrument(key string) (int, float64, error) {
	quotes, err := c.kc.GetQuote(key)
	if err != nil {
		return 0, 0, err
	}
	q, ok := quotes[key]
	if !ok || q.InstrumentToken == 0 {
		return 0, 0, fmt.Errorf("instrument %s not found", key)
	}
	return q.InstrumentToken, q.LastPrice, nil
}

func (c *kiteClient) dailyBars(token int, from, to time.Time) ([]types.PricePoint, error) {
	candles, err := c.kc.GetHistoricalData(token, "day", from, to, false, false)
	if err != nil {
		return nil, err
	}
	out := make([]types.PricePoint, 0, len(candles))
	for _, cd := range candles {
		out = append(out, types.PricePoint{
			Time:   cd.Date.Time,
			Open:   cd.Open,
			High:   cd.High,
			Low:    cd.Low,
			Close:  cd.Close,
			Volume: float64(cd.Volume),
		})
	}
	return out, nil
}

// KiteSource reads NSE/BSE prices through Zerodha Kite Connect. Kite has no
// company names or market cap, so Quote leaves those to the display fallbacks.
type KiteSource struct {
	api kiteAPI
	now func() time.Time
}

var _ interfaces.MarketData = (*KiteSource)(nil)

var ErrKiteCredentials = errors.New("kite api key and access token are required")

func NewKiteSource(apiKey, accessToken string) (*KiteSource, error) {
	if apiKey == "" || accessToken == "" {
		return nil, ErrKiteCredentials
	}
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	return &KiteSource{api: &kiteClient{kc: kc}, now: time.Now}, nil
}

func instrumentKey(symbol string) string {
	exch, ts := Exchange(symbol)
	return exch + ":" + ts
}

// History fetches enough calendar days to cover the requested trading days,
// then trims to the most recent days bars.
func (k *KiteSource) History(ctx context.Context, symbol string, days int) ([]types.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	token, _, err := k.api.instrument(instrumentKey(symbol))
	if err != nil {
		return nil, fmt.Errorf("kite quote %s: %w", symbol, err)
	}
	return k.bars(token, symbol, days)
}

func (k *KiteSource) bars(token int, symbol string, days int) ([]types.PricePoint, error) {
	to := k.now()
	from := to.AddDate(0, 0, -(days*365/tradingDaysPerYear + 14))

	bars, err := k.api.dailyBars(token, from, to)
	if err != nil {
		return nil, fmt.Errorf("kite history %s: %w", symbol, err)
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func (k *KiteSource) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	if err := ctx.Err(); err != nil {
		return types.Quote{}, err
	}
	token, last, err := k.api.instrument(instrumentKey(symbol))
	if err != nil {
		return types.Quote{}, fmt.Errorf("kite quote %s: %w", symbol, err)
	}

	bars, err := k.bars(token, symbol, tradingDaysPerYear)
	if err != nil {
		return types.Quote{}, err
	}
	q := types.Quote{Symbol: symbol, Currency: "INR", CurrentPrice: last}
	if hi, lo, ok := ta.Range(types.Closes(bars), tradingDaysPerYear); ok {
		q.FiftyTwoWeekHigh, q.FiftyTwoWeekLow = hi, lo
	}
	return q, nil
}
