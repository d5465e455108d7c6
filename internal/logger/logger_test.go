package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/samarth5630/stock-dashboard/internal/trace"
)

func captureJSON(t *testing.T, level string, detailed bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := InitWithConfig(LogConfig{Level: level, Format: "json", DetailedLogging: detailed, Output: &buf}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	t.Cleanup(func() { detailedLogging = false })
	return &buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if l == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(l), &m); err != nil {
			t.Fatalf("Expected JSON log line, got %q", l)
		}
		out = append(out, m)
	}
	return out
}

func TestLevelsAndDebugGate(t *testing.T) {
	buf := captureJSON(t, "INFO", false)
	ctx := context.Background()

	Debug(ctx, "hidden")
	Info(ctx, "shown", "symbol", "TCS.NS")
	ErrorWithErr(ctx, "failed", errors.New("boom"))

	got := lines(t, buf)
	if len(got) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %s", len(got), buf.String())
	}
	if got[0]["msg"] != "shown" || got[0]["symbol"] != "TCS.NS" {
		t.Errorf("Unexpected info line %v", got[0])
	}
	if got[1]["level"] != "ERROR" || got[1]["error"] != "boom" {
		t.Errorf("Unexpected error line %v", got[1])
	}
}

func TestDetailedLoggingAddsSource(t *testing.T) {
	buf := captureJSON(t, "DEBUG", true)

	Debug(context.Background(), "visible")

	got := lines(t, buf)
	if len(got) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(got))
	}
	src, ok := got[0]["source"].(map[string]any)
	if !ok || !strings.HasSuffix(src["file"].(string), "logger_test.go") {
		t.Errorf("Expected caller source from the test file, got %v", got[0]["source"])
	}
}

func TestRecommendationFields(t *testing.T) {
	buf := captureJSON(t, "WARN", false)

	Recommendation(context.Background(), "INFY.NS", "Buy", 0.25, "Strong Buy")

	got := lines(t, buf)
	if len(got) != 0 {
		t.Fatalf("Expected recommendation to respect WARN level, got %v", got)
	}

	buf = captureJSON(t, "INFO", false)
	Recommendation(context.Background(), "INFY.NS", "Buy", 0.25, "Strong Buy")
	got = lines(t, buf)
	if len(got) != 1 || got[0]["recommendation"] != "Strong Buy" || got[0]["type"] != "RECOMMENDATION" {
		t.Errorf("Unexpected recommendation line %v", got)
	}
}

func TestTraceIDsAttached(t *testing.T) {
	if err := trace.InitWithWriter(io.Discard, false); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	t.Cleanup(func() { _ = trace.Shutdown(context.Background()) })

	buf := captureJSON(t, "INFO", false)
	ctx, span := trace.StartSpan(context.Background(), "test")
	Info(ctx, "inside span")
	span.End()

	got := lines(t, buf)
	if len(got) != 1 || got[0]["trace_id"] == nil || got[0]["span_id"] == nil {
		t.Errorf("Expected trace fields, got %v", got)
	}
}

func TestNewAccessLogger(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		l, err := NewAccessLogger(format, "warn")
		if err != nil {
			t.Fatalf("Expected no error for %s, got %v", format, err)
		}
		if l.Core().Enabled(-1) {
			t.Errorf("Expected debug disabled for %s", format)
		}
	}
	if l, err := NewAccessLogger("json", "nonsense"); err != nil || l == nil {
		t.Errorf("Expected fallback level, got %v", err)
	}
}
