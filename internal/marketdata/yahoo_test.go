package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "RELIANCE.NS", "currency": "INR", "longName": "Reliance Industries Limited",
               "regularMarketPrice": 2950.5, "fiftyTwoWeekHigh": 3217.9, "fiftyTwoWeekLow": 2220.3},
      "timestamp": [1704240000, 1704153600, 1704326400, 1704326400, 1704412800, 1704672000],
      "indicators": {"quote": [{
        "open":   [101, 100, 101.5, 102, 103, null],
        "high":   [102, 101, 102.5, 103, 104, null],
        "low":    [100,  99, 101.0, 101, 102, null],
        "close":  [101.5, 100.5, 102.0, 102.5, 103.5, null],
        "volume": [1000, 900, 950, 1100, 1200, null]
      }]}
    }],
    "error": null
  }
}`

func newYahooTestServer(t *testing.T, quoteStatus int) (*httptest.Server, *int) {
	t.Helper()
	quoteCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/RELIANCE.NS") {
			http.Error(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`, http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("Expected daily interval, got %q", r.URL.Query().Get("interval"))
		}
		_, _ = w.Write([]byte(chartBody))
	})
	mux.HandleFunc("/v7/finance/quote", func(w http.ResponseWriter, r *http.Request) {
		quoteCalls++
		if quoteStatus != http.StatusOK {
			http.Error(w, `{"finance":{"error":{"code":"Unauthorized","description":"Invalid Crumb"}}}`, quoteStatus)
			return
		}
		_, _ = w.Write([]byte(`{"quoteResponse":{"result":[{"symbol":"RELIANCE.NS","longName":"Reliance Industries Limited",
			"currency":"INR","regularMarketPrice":2951,"marketCap":19970000000000,"fiftyTwoWeekHigh":3217.9,"fiftyTwoWeekLow":2220.3}],"error":null}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &quoteCalls
}

func TestYahooHistorySkipsNullsSortsAndDedupes(t *testing.T) {
	srv, _ := newYahooTestServer(t, http.StatusOK)
	y := NewYahooSource(srv.URL+"/v8/finance/chart", srv.URL+"/v7/finance/quote", 2*time.Second)

	bars, err := y.History(context.Background(), "RELIANCE.NS", 300)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(bars) != 4 {
		t.Fatalf("Expected 4 bars after dropping the null and the duplicate, got %d", len(bars))
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i-1].Time.Before(bars[i].Time) {
			t.Errorf("Bars not strictly chronological at %d", i)
		}
	}
	if bars[0].Close != 100.5 {
		t.Errorf("Expected oldest close 100.5, got %v", bars[0].Close)
	}
	if bars[len(bars)-1].Close != 103.5 {
		t.Errorf("Expected latest close 103.5, got %v", bars[len(bars)-1].Close)
	}
	if bars[2].Close != 102.5 {
		t.Errorf("Expected the later duplicate to win, got %v", bars[2].Close)
	}
}

func TestYahooHistoryTrimsToDays(t *testing.T) {
	srv, _ := newYahooTestServer(t, http.StatusOK)
	y := NewYahooSource(srv.URL+"/v8/finance/chart", srv.URL+"/v7/finance/quote", 2*time.Second)

	bars, err := y.History(context.Background(), "RELIANCE.NS", 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(bars) != 2 || bars[1].Close != 103.5 {
		t.Errorf("Expected the 2 most recent bars, got %+v", bars)
	}
}

func TestYahooHistoryUnknownSymbol(t *testing.T) {
	srv, _ := newYahooTestServer(t, http.StatusOK)
	y := NewYahooSource(srv.URL+"/v8/finance/chart", srv.URL+"/v7/finance/quote", 2*time.Second)

	if _, err := y.History(context.Background(), "NOPE.NS", 300); err == nil {
		t.Error("Expected error for unknown symbol")
	}
}

func TestYahooQuote(t *testing.T) {
	srv, calls := newYahooTestServer(t, http.StatusOK)
	y := NewYahooSource(srv.URL+"/v8/finance/chart", srv.URL+"/v7/finance/quote", 2*time.Second)

	q, err := y.Quote(context.Background(), "RELIANCE.NS")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if *calls != 1 {
		t.Errorf("Expected one quote call, got %d", *calls)
	}
	if q.LongName != "Reliance Industries Limited" || q.CurrentPrice != 2951 {
		t.Errorf("Unexpected quote %+v", q)
	}
	if q.MarketCap != 19970000000000 {
		t.Errorf("Expected market cap from quote endpoint, got %v", q.MarketCap)
	}
}

func TestYahooQuoteFallsBackToChartMeta(t *testing.T) {
	srv, _ := newYahooTestServer(t, http.StatusUnauthorized)
	y := NewYahooSource(srv.URL+"/v8/finance/chart", srv.URL+"/v7/finance/quote", 2*time.Second)

	q, err := y.Quote(context.Background(), "RELIANCE.NS")
	if err != nil {
		t.Fatalf("Expected fallback to succeed, got %v", err)
	}
	if q.CurrentPrice != 2950.5 {
		t.Errorf("Expected chart meta price 2950.5, got %v", q.CurrentPrice)
	}
	if q.FiftyTwoWeekHigh != 3217.9 || q.FiftyTwoWeekLow != 2220.3 {
		t.Errorf("Unexpected 52-week range %v/%v", q.FiftyTwoWeekHigh, q.FiftyTwoWeekLow)
	}
	if q.MarketCap != 0 {
		t.Errorf("Expected unknown market cap in fallback, got %v", q.MarketCap)
	}
}

func TestChartRange(t *testing.T) {
	cases := map[int]string{10: "1mo", 60: "3mo", 100: "6mo", 200: "1y", 300: "2y", 1000: "5y"}
	for days, want := range cases {
		if got := chartRange(days); got != want {
			t.Errorf("chartRange(%d) = %s, want %s", days, got, want)
		}
	}
}
