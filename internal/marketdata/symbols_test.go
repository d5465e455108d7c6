package marketdata

import (
	"errors"
	"testing"

	"github.com/samarth5630/stock-dashboard/internal/engine"
	"github.com/samarth5630/stock-dashboard/internal/store"
)

func TestNormalizeSymbol(t *testing.T) {
	valid := map[string]string{
		"RELIANCE.NS":   "RELIANCE.NS",
		"  tcs.ns ":     "TCS.NS",
		"M&M.NS":        "M&M.NS",
		"^NSEI":         "^NSEI",
		"BAJAJ-AUTO.BO": "BAJAJ-AUTO.BO",
	}
	for in, want := range valid {
		got, err := NormalizeSymbol(in)
		if err != nil {
			t.Errorf("NormalizeSymbol(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", in, got, want)
		}
	}

	invalid := []string{"", "   ", "RELIANCE NS", "<script>", "A/B", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"}
	for _, in := range invalid {
		if _, err := NormalizeSymbol(in); !errors.Is(err, engine.ErrInvalidSymbol) {
			t.Errorf("NormalizeSymbol(%q): expected ErrInvalidSymbol, got %v", in, err)
		}
	}
}

func TestExchange(t *testing.T) {
	cases := []struct {
		in, exch, sym string
	}{
		{"RELIANCE.NS", "NSE", "RELIANCE"},
		{"RELIANCE.BO", "BSE", "RELIANCE"},
		{"INFY", "NSE", "INFY"},
	}
	for _, c := range cases {
		exch, sym := Exchange(c.in)
		if exch != c.exch || sym != c.sym {
			t.Errorf("Exchange(%q) = %s, %s; want %s, %s", c.in, exch, sym, c.exch, c.sym)
		}
	}
}

func TestNewRejectsKiteWithoutCredentials(t *testing.T) {
	t.Setenv("KITE_API_KEY", "")
	t.Setenv("KITE_ACCESS_TOKEN", "")

	cfg := store.Default()
	cfg.MarketData.Source = store.SourceKite
	if _, err := New(cfg); !errors.Is(err, ErrKiteCredentials) {
		t.Errorf("Expected ErrKiteCredentials, got %v", err)
	}
}
