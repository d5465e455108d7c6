package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/samarth5630/stock-dashboard/internal/api"
	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/ta"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

// tradingDaysPerYear is also the lookback used for the 52-week range.
const tradingDaysPerYear = 252

// YahooSource reads Yahoo Finance's public chart and quote endpoints.
type YahooSource struct {
	client   *api.Client
	chartURL string
	quoteURL string
}

var _ interfaces.MarketData = (*YahooSource)(nil)

func NewYahooSource(chartURL, quoteURL string, timeout time.Duration) *YahooSource {
	return &YahooSource{
		client: api.NewClient(
			api.WithTimeout(timeout),
			api.WithHeaders(api.YahooFinanceHeaders()),
			api.WithLogging(true),
		),
		chartURL: strings.TrimRight(chartURL, "/"),
		quoteURL: quoteURL,
	}
}

type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string   `json:"symbol"`
				Currency           string   `json:"currency"`
				LongName           string   `json:"longName"`
				ShortName          string   `json:"shortName"`
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				FiftyTwoWeekHigh   *float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow    *float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string  `json:"symbol"`
			LongName           string  `json:"longName"`
			ShortName          string  `json:"shortName"`
			Currency           string  `json:"currency"`
			RegularMarketPrice float64 `json:"regularMarketPrice"`
			MarketCap          float64 `json:"marketCap"`
			FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`
			FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// chartRange picks the smallest Yahoo range that holds the requested number of
// trading days.
func chartRange(days int) string {
	switch {
	case days <= 20:
		return "1mo"
	case days <= 60:
		return "3mo"
	case days <= 120:
		return "6mo"
	case days <= 245:
		return "1y"
	case days <= 490:
		return "2y"
	default:
		return "5y"
	}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func (y *YahooSource) fetchChart(ctx context.Context, symbol, rng string) (*yahooChart, error) {
	resp, err := y.client.GET(ctx, y.chartURL+"/"+url.PathEscape(symbol), url.Values{
		"interval": {"1d"},
		"range":    {rng},
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}

	var chart yahooChart
	if err := resp.ParseJSON(&chart); err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart %s: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: no data returned", symbol)
	}
	return &chart, nil
}

// History returns up to days daily bars, oldest first. Bars with a null close
// (holidays, suspended sessions) are dropped, as are duplicate timestamps.
func (y *YahooSource) History(ctx context.Context, symbol string, days int) ([]types.PricePoint, error) {
	chart, err := y.fetchChart(ctx, symbol, chartRange(days))
	if err != nil {
		return nil, err
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: no quote indicators", symbol)
	}
	q := result.Indicators.Quote[0]
	at := func(s []*float64, i int) float64 {
		if i < len(s) {
			return deref(s[i])
		}
		return 0
	}

	bars := make([]types.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		bars = append(bars, types.PricePoint{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   at(q.Open, i),
			High:   at(q.High, i),
			Low:    at(q.Low, i),
			Close:  *q.Close[i],
			Volume: at(q.Volume, i),
		})
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	bars = dedupe(bars)

	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func dedupe(bars []types.PricePoint) []types.PricePoint {
	if len(bars) < 2 {
		return bars
	}
	out := bars[:1]
	for _, b := range bars[1:] {
		if b.Time.Equal(out[len(out)-1].Time) {
			out[len(out)-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

// Quote reads the v7 quote endpoint. Yahoo often refuses it without a session
// crumb, so any failure there falls back to the chart metadata.
func (y *YahooSource) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	q, err := y.quoteV7(ctx, symbol)
	if err == nil {
		return q, nil
	}
	logger.Warn(ctx, "Yahoo quote endpoint unavailable, using chart metadata",
		"symbol", symbol,
		"status", api.StatusCode(err),
		"error", err,
	)
	return y.quoteFromChart(ctx, symbol)
}

var errNoQuote = errors.New("no quote returned")

func (y *YahooSource) quoteV7(ctx context.Context, symbol string) (types.Quote, error) {
	resp, err := y.client.GET(ctx, y.quoteURL, url.Values{"symbols": {symbol}})
	if err != nil {
		return types.Quote{}, err
	}

	var qr yahooQuoteResponse
	if err := resp.ParseJSON(&qr); err != nil {
		return types.Quote{}, err
	}
	if qr.QuoteResponse.Error != nil {
		return types.Quote{}, fmt.Errorf("yahoo quote %s: %s", symbol, qr.QuoteResponse.Error.Description)
	}
	if len(qr.QuoteResponse.Result) == 0 {
		return types.Quote{}, fmt.Errorf("yahoo quote %s: %w", symbol, errNoQuote)
	}

	r := qr.QuoteResponse.Result[0]
	name := r.LongName
	if name == "" {
		name = r.ShortName
	}
	return types.Quote{
		Symbol:           symbol,
		LongName:         name,
		Currency:         r.Currency,
		CurrentPrice:     r.RegularMarketPrice,
		FiftyTwoWeekHigh: r.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  r.FiftyTwoWeekLow,
		MarketCap:        r.MarketCap,
	}, nil
}

func (y *YahooSource) quoteFromChart(ctx context.Context, symbol string) (types.Quote, error) {
	chart, err := y.fetchChart(ctx, symbol, "1y")
	if err != nil {
		return types.Quote{}, err
	}
	result := chart.Chart.Result[0]
	meta := result.Meta

	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	q := types.Quote{
		Symbol:           symbol,
		LongName:         name,
		Currency:         meta.Currency,
		CurrentPrice:     deref(meta.RegularMarketPrice),
		FiftyTwoWeekHigh: deref(meta.FiftyTwoWeekHigh),
		FiftyTwoWeekLow:  deref(meta.FiftyTwoWeekLow),
	}

	// Older chart responses omit the 52-week fields; derive them from the closes.
	if q.FiftyTwoWeekHigh == 0 && len(result.Indicators.Quote) > 0 {
		closes := make([]float64, 0, len(result.Indicators.Quote[0].Close))
		for _, c := range result.Indicators.Quote[0].Close {
			if c != nil {
				closes = append(closes, *c)
			}
		}
		if hi, lo, ok := ta.Range(closes, tradingDaysPerYear); ok {
			q.FiftyTwoWeekHigh, q.FiftyTwoWeekLow = hi, lo
		}
		if q.CurrentPrice == 0 && len(closes) > 0 {
			q.CurrentPrice = closes[len(closes)-1]
		}
	}
	return q, nil
}
