package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestClientGETAppliesHeadersAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/v8/finance/chart/TCS.NS" {
			t.Errorf("Expected chart path, got %s", got)
		}
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("Expected interval=1d, got %q", got)
		}
		if got := r.Header.Get("X-Default"); got != "client" {
			t.Errorf("Expected default header, got %q", got)
		}
		if got := r.Header.Get("X-Default-Override"); got != "request" {
			t.Errorf("Expected request header to win, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(
		WithBaseURL(srv.URL),
		WithTimeout(2*time.Second),
		WithHeader("X-Default", "client"),
		WithHeader("X-Default-Override", "client"),
	)

	resp, err := c.GET(context.Background(), "/v8/finance/chart/TCS.NS",
		url.Values{"interval": {"1d"}},
		map[string]string{"X-Default-Override": "request"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var body struct {
		OK bool `json:"ok"`
	}
	if err := resp.ParseJSON(&body); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if !body.OK {
		t.Error("Expected ok=true")
	}
	if resp.String() != `{"ok":true}` {
		t.Errorf("Unexpected body %q", resp.String())
	}
}

func TestClientReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, strings.Repeat("x", 2000), http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).GET(context.Background(), "/quote", nil)
	if err == nil {
		t.Fatal("Expected error for 401 response")
	}
	if got := StatusCode(err); got != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", got)
	}
	if len(err.Error()) > maxErrorBody+32 {
		t.Errorf("Expected error body to be truncated, got %d bytes", len(err.Error()))
	}
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL), WithTimeout(time.Second)).GET(context.Background(), "/", nil)
	if err == nil {
		t.Fatal("Expected error from closed server")
	}
	if StatusCode(err) != 0 {
		t.Errorf("Expected no status code for transport error, got %d", StatusCode(err))
	}
}

func TestClientQueryReplacesExisting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "symbols=INFY.NS" {
			t.Errorf("Expected query to be replaced, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := NewClient().GET(context.Background(), srv.URL+"/quote?stale=1", url.Values{"symbols": {"INFY.NS"}}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestParseJSONInvalid(t *testing.T) {
	r := &Response{Body: []byte("<html>")}
	var v map[string]any
	if err := r.ParseJSON(&v); err == nil {
		t.Error("Expected parse error")
	}
}

func TestHeaderPresets(t *testing.T) {
	if YahooFinanceHeaders()["Referer"] != "https://finance.yahoo.com/" {
		t.Error("Expected Yahoo referer")
	}
	if NewsAPIHeaders("k")["X-Api-Key"] != "k" {
		t.Error("Expected NewsAPI key header")
	}
	if YahooFinanceHeaders()["User-Agent"] != userAgent {
		t.Error("Expected browser user agent")
	}
}
