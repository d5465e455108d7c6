package server

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/samarth5630/stock-dashboard/internal/store"
	"github.com/samarth5630/stock-dashboard/internal/ta"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

const (
	chartWidth   = 800.0
	chartHeight  = 320.0
	chartPadding = 40.0
)

// Page is everything the dashboard template renders for one request.
type Page struct {
	Title   string
	Tagline string
	LogoURL string
	Symbol  string

	Info  string
	Error string

	Result *ResultView
}

type Metric struct {
	Label string
	Value string
}

type HeadlineView struct {
	Title  string
	URL    string
	Source string
	Score  string
}

type ResultView struct {
	CompanyName    string
	Row1           []Metric
	Row2           []Metric
	Recommendation string
	RecClass       string
	Chart          *ChartView
	Headlines      []HeadlineView
	SentimentFrom  string
	GeneratedAt    string
}

type ChartSeries struct {
	Name   string
	Class  string
	Points string
}

type ChartView struct {
	Width, Height float64
	Series        []ChartSeries
	MaxLabel      string
	MinLabel      string
	StartLabel    string
	EndLabel      string
}

func newPage(cfg *store.Config, symbol string) *Page {
	return &Page{
		Title:   cfg.Dashboard.Title,
		Tagline: cfg.Dashboard.Tagline,
		LogoURL: cfg.Dashboard.LogoURL,
		Symbol:  symbol,
	}
}

func currencyPrefix(code string) string {
	switch strings.ToUpper(code) {
	case "", "INR":
		return "₹"
	case "USD":
		return "$"
	default:
		return strings.ToUpper(code) + " "
	}
}

// formatMoney renders a price with thousands separators and two decimals.
func formatMoney(v float64, currency string) string {
	if v == 0 || math.IsNaN(v) {
		return "N/A"
	}
	return currencyPrefix(currency) + humanize.FormatFloat("#,###.##", v)
}

// formatMarketCap renders a whole-rupee market cap plus a short scale hint.
func formatMarketCap(v float64, currency string) string {
	if v <= 0 || math.IsNaN(v) {
		return "N/A"
	}
	full := currencyPrefix(currency) + humanize.Comma(int64(math.Round(v)))
	if v >= 1e7 {
		return fmt.Sprintf("%s (%s Cr)", full, humanize.FormatFloat("#,###.", v/1e7))
	}
	return full
}

func recommendationLabel(r types.Recommendation) (label, class string) {
	switch r {
	case types.RecommendationStrongBuy:
		return "✅ Strong Buy", "strong-buy"
	case types.RecommendationBuy:
		return "Buy", "buy"
	case types.RecommendationSell:
		return "Sell", "sell"
	case types.RecommendationStrongSell:
		return "❌ Strong Sell", "strong-sell"
	default:
		return "Hold", "hold"
	}
}

func newResultView(a *types.Analysis, chartDays int) *ResultView {
	q := a.Quote
	label, class := recommendationLabel(a.Recommendation)

	rv := &ResultView{
		CompanyName: q.DisplayName(),
		Row1: []Metric{
			{"Current Price", formatMoney(q.CurrentPrice, q.Currency)},
			{"52 Week High", formatMoney(q.FiftyTwoWeekHigh, q.Currency)},
			{"52 Week Low", formatMoney(q.FiftyTwoWeekLow, q.Currency)},
		},
		Row2: []Metric{
			{"Market Cap", formatMarketCap(q.MarketCap, q.Currency)},
			{"Tech Signal", string(a.TechnicalSignal)},
			{"Sentiment Score", fmt.Sprintf("%.2f", a.Sentiment.Score)},
		},
		Recommendation: label,
		RecClass:       class,
		Chart:          buildChart(a.History, a.ShortWindow, a.LongWindow, chartDays),
		SentimentFrom:  a.Sentiment.Source,
		GeneratedAt:    a.GeneratedAt.Format("02 Jan 2006 15:04 MST"),
	}
	for _, h := range a.Sentiment.Headlines {
		rv.Headlines = append(rv.Headlines, HeadlineView{
			Title:  h.Title,
			URL:    h.URL,
			Source: h.Source,
			Score:  fmt.Sprintf("%.2f", h.Score),
		})
	}
	return rv
}

// buildChart draws close, short MA and long MA for the last chartDays bars as
// SVG polylines. The averages are computed over the full history; bars where a
// window is not yet full are left out of that line.
func buildChart(history []types.PricePoint, shortW, longW, chartDays int) *ChartView {
	if len(history) < 2 {
		return nil
	}
	closes := types.Closes(history)
	maShort := ta.MovingAverageSeries(closes, shortW)
	maLong := ta.MovingAverageSeries(closes, longW)

	start := 0
	if chartDays > 0 && len(history) > chartDays {
		start = len(history) - chartDays
	}
	n := len(history) - start

	lo, hi := math.Inf(1), math.Inf(-1)
	track := func(v float64) {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for i := start; i < len(history); i++ {
		track(closes[i])
		if maShort[i] != nil {
			track(*maShort[i])
		}
		if maLong[i] != nil {
			track(*maLong[i])
		}
	}
	if hi == lo {
		hi, lo = hi+1, lo-1
	}

	x := func(i int) float64 {
		return chartPadding + float64(i-start)*(chartWidth-2*chartPadding)/float64(n-1)
	}
	y := func(v float64) float64 {
		return chartPadding + (hi-v)*(chartHeight-2*chartPadding)/(hi-lo)
	}
	line := func(get func(i int) (float64, bool)) string {
		var b strings.Builder
		for i := start; i < len(history); i++ {
			v, ok := get(i)
			if !ok {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%.1f,%.1f", x(i), y(v))
		}
		return b.String()
	}
	fromSeries := func(s []*float64) func(int) (float64, bool) {
		return func(i int) (float64, bool) {
			if s[i] == nil {
				return 0, false
			}
			return *s[i], true
		}
	}

	return &ChartView{
		Width:  chartWidth,
		Height: chartHeight,
		Series: []ChartSeries{
			{Name: "Close", Class: "close", Points: line(func(i int) (float64, bool) { return closes[i], true })},
			{Name: fmt.Sprintf("MA%d", shortW), Class: "ma-short", Points: line(fromSeries(maShort))},
			{Name: fmt.Sprintf("MA%d", longW), Class: "ma-long", Points: line(fromSeries(maLong))},
		},
		MaxLabel:   humanize.FormatFloat("#,###.##", hi),
		MinLabel:   humanize.FormatFloat("#,###.##", lo),
		StartLabel: history[start].Time.Format("02 Jan 2006"),
		EndLabel:   history[len(history)-1].Time.Format("02 Jan 2006"),
	}
}
