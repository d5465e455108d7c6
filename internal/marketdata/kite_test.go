package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samarth5630/stock-dashboard/internal/types"
)

type fakeKite struct {
	tokens  map[string]int
	last    float64
	bars    []types.PricePoint
	gotFrom time.Time
	gotKey  string
}

func (f *fakeKite) instrument(key string) (int, float64, error) {
	f.gotKey = key
	tok, ok := f.tokens[key]
	if !ok {
		return 0, 0, errors.New("instrument not found")
	}
	return tok, f.last, nil
}

func (f *fakeKite) dailyBars(_ int, from, _ time.Time) ([]types.PricePoint, error) {
	f.gotFrom = from
	return f.bars, nil
}

func kiteBars(n int) []types.PricePoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]types.PricePoint, n)
	for i := range out {
		out[i] = types.PricePoint{Time: start.AddDate(0, 0, i), Close: float64(100 + i)}
	}
	return out
}

func TestNewKiteSourceRequiresCredentials(t *testing.T) {
	if _, err := NewKiteSource("", "token"); !errors.Is(err, ErrKiteCredentials) {
		t.Errorf("Expected ErrKiteCredentials, got %v", err)
	}
	if _, err := NewKiteSource("key", ""); !errors.Is(err, ErrKiteCredentials) {
		t.Errorf("Expected ErrKiteCredentials, got %v", err)
	}
}

func TestKiteHistoryTrims(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	fk := &fakeKite{tokens: map[string]int{"NSE:INFY": 408065}, bars: kiteBars(400)}
	k := &KiteSource{api: fk, now: func() time.Time { return now }}

	bars, err := k.History(context.Background(), "INFY.NS", 300)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fk.gotKey != "NSE:INFY" {
		t.Errorf("Expected NSE:INFY lookup, got %s", fk.gotKey)
	}
	if len(bars) != 300 {
		t.Errorf("Expected 300 bars, got %d", len(bars))
	}
	if bars[len(bars)-1].Close != 499 {
		t.Errorf("Expected the most recent bar to be kept, got %v", bars[len(bars)-1].Close)
	}
	if !fk.gotFrom.Before(now.AddDate(0, 0, -300)) {
		t.Errorf("Expected lookback to exceed 300 calendar days, got from=%s", fk.gotFrom)
	}
}

func TestKiteQuoteDerivesRange(t *testing.T) {
	fk := &fakeKite{tokens: map[string]int{"BSE:TCS": 1}, last: 3999.5, bars: kiteBars(300)}
	k := &KiteSource{api: fk, now: time.Now}

	q, err := k.Quote(context.Background(), "TCS.BO")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if q.CurrentPrice != 3999.5 {
		t.Errorf("Expected last price 3999.5, got %v", q.CurrentPrice)
	}
	// Last 252 of closes 100..399 span 148..399.
	if q.FiftyTwoWeekHigh != 399 || q.FiftyTwoWeekLow != 148 {
		t.Errorf("Expected 52-week range 399/148, got %v/%v", q.FiftyTwoWeekHigh, q.FiftyTwoWeekLow)
	}
	if q.Currency != "INR" {
		t.Errorf("Expected INR, got %s", q.Currency)
	}
}

func TestKiteUnknownInstrument(t *testing.T) {
	k := &KiteSource{api: &fakeKite{tokens: map[string]int{}}, now: time.Now}
	if _, err := k.History(context.Background(), "NOPE.NS", 10); err == nil {
		t.Error("Expected error for unknown instrument")
	}
	if _, err := k.Quote(context.Background(), "NOPE.NS"); err == nil {
		t.Error("Expected error for unknown instrument")
	}
}
