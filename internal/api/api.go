// Package api is the small JSON-over-HTTP client shared by the market data
// and news collaborators.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/trace"
)

// maxErrorBody bounds how much of a failed response body ends up in an error string.
const maxErrorBody = 512

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client issues GET requests with a fixed set of default headers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	verbose    bool
}

// ClientOption configures the API client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL is prefixed to every request path
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithLogging turns on per-request debug lines and warnings for error statuses.
func WithLogging(enabled bool) ClientOption {
	return func(c *Client) {
		c.verbose = enabled
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		headers:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned for any response with a status code of 400 or above.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// StatusCode reports the HTTP status carried by err, or 0 when err is not a StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// Response is a fully read 2xx response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

func (r *Response) ParseJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}

func (r *Response) String() string {
	return string(r.Body)
}

// GET fetches path (joined to the base URL) with query replacing any query
// already on it. Headers in the optional map override the client defaults.
func (c *Client) GET(ctx context.Context, path string, query url.Values, headers ...map[string]string) (*Response, error) {
	target, err := c.resolve(path, query)
	if err != nil {
		return nil, err
	}

	ctx, span := trace.StartSpan(ctx, "http.client GET")
	defer span.End()
	span.SetAttributes(attribute.String("http.url", target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if len(headers) > 0 {
		for k, v := range headers[0] {
			req.Header.Set(k, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if c.verbose {
		logger.Debug(ctx, "HTTP GET", "url", target, "status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(), "bytes", len(body))
	}

	if resp.StatusCode >= 400 {
		snippet := string(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		if c.verbose {
			logger.Warn(ctx, "HTTP error response", "url", target, "status", resp.StatusCode)
		}
		span.SetStatus(codes.Error, resp.Status)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: snippet}
	}

	return &Response{StatusCode: resp.StatusCode, Body: body, Headers: resp.Header}, nil
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// YahooFinanceHeaders mimics a browser; the endpoints refuse bare clients.
func YahooFinanceHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "application/json",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finance.yahoo.com/",
	}
}

// NewsAPIHeaders authenticates against newsapi.org by key.
func NewsAPIHeaders(apiKey string) map[string]string {
	return map[string]string{
		"User-Agent": "stock-dashboard/1.0",
		"Accept":     "application/json",
		"X-Api-Key":  apiKey,
	}
}
