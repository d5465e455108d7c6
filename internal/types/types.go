package types

import "time"

// PricePoint is one daily bar. Only Close feeds the signal; the rest is display data.
type PricePoint struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open,omitempty"`
	High   float64   `json:"high,omitempty"`
	Low    float64   `json:"low,omitempty"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume,omitempty"`
}

// Closes extracts the closing prices in order.
func Closes(points []PricePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Close
	}
	return out
}

// Quote holds the display fields the dashboard forwards without computing.
type Quote struct {
	Symbol           string  `json:"symbol"`
	LongName         string  `json:"long_name"`
	Currency         string  `json:"currency"`
	CurrentPrice     float64 `json:"current_price"`
	FiftyTwoWeekHigh float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  float64 `json:"fifty_two_week_low"`
	MarketCap        float64 `json:"market_cap"`
}

// DisplayName prefers the company's long name and falls back to the ticker.
func (q Quote) DisplayName() string {
	if q.LongName != "" {
		return q.LongName
	}
	return q.Symbol
}

type TechnicalSignal string

const (
	SignalBuy  TechnicalSignal = "Buy"
	SignalSell TechnicalSignal = "Sell"
	SignalHold TechnicalSignal = "Hold"
)

type Recommendation string

const (
	RecommendationStrongBuy  Recommendation = "Strong Buy"
	RecommendationBuy        Recommendation = "Buy"
	RecommendationHold       Recommendation = "Hold"
	RecommendationSell       Recommendation = "Sell"
	RecommendationStrongSell Recommendation = "Strong Sell"
)

// Headline is a single piece of news text to be scored.
type Headline struct {
	Title       string `json:"title"`
	Source      string `json:"source,omitempty"`
	URL         string `json:"url,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

type ScoredHeadline struct {
	Headline
	Score float64 `json:"score"`
}

// SentimentResult is the aggregated polarity over the headlines of one lookup.
type SentimentResult struct {
	Source    string           `json:"source"`
	Score     float64          `json:"score"`
	Headlines []ScoredHeadline `json:"headlines"`
}

// Analysis is the outcome of one dashboard lookup.
type Analysis struct {
	Symbol          string          `json:"symbol"`
	Quote           Quote           `json:"quote"`
	ShortWindow     int             `json:"short_window"`
	LongWindow      int             `json:"long_window"`
	MAShort         float64         `json:"ma_short"`
	MALong          float64         `json:"ma_long"`
	TechnicalSignal TechnicalSignal `json:"technical_signal"`
	Sentiment       SentimentResult `json:"sentiment"`
	Recommendation  Recommendation  `json:"recommendation"`
	History         []PricePoint    `json:"-"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// Flat renders the analysis as the key-value record served in API mode.
func (a *Analysis) Flat() map[string]any {
	return map[string]any{
		"symbol":              a.Symbol,
		"company_name":        a.Quote.DisplayName(),
		"current_price":       a.Quote.CurrentPrice,
		"fifty_two_week_high": a.Quote.FiftyTwoWeekHigh,
		"fifty_two_week_low":  a.Quote.FiftyTwoWeekLow,
		"market_cap":          a.Quote.MarketCap,
		"ma_short":            a.MAShort,
		"ma_long":             a.MALong,
		"technical_signal":    string(a.TechnicalSignal),
		"sentiment_score":     a.Sentiment.Score,
		"sentiment_source":    a.Sentiment.Source,
		"headline_count":      len(a.Sentiment.Headlines),
		"recommendation":      string(a.Recommendation),
		"generated_at":        a.GeneratedAt.UTC().Format(time.RFC3339),
	}
}
