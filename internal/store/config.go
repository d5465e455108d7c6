package store

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	SourceStatic  = "STATIC"
	SourceYahoo   = "YAHOO"
	SourceKite    = "KITE"
	SourceMock    = "MOCK"
	SourceNewsAPI = "NEWSAPI"
	SourceScrape  = "SCRAPE"
)

type Config struct {
	Server struct {
		Addr                string `yaml:"addr"`
		Mode                string `yaml:"mode"`
		ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	} `yaml:"server"`
	Dashboard struct {
		Title         string `yaml:"title"`
		Tagline       string `yaml:"tagline"`
		LogoURL       string `yaml:"logo_url"`
		DefaultSymbol string `yaml:"default_symbol"`
		ChartDays     int    `yaml:"chart_days"`
	} `yaml:"dashboard"`
	MarketData struct {
		Source         string `yaml:"source"`
		HistoryDays    int    `yaml:"history_days"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		Yahoo          struct {
			ChartURL string `yaml:"chart_url"`
			QuoteURL string `yaml:"quote_url"`
		} `yaml:"yahoo"`
		Kite struct {
			APIKeyEnv      string `yaml:"api_key_env"`
			AccessTokenEnv string `yaml:"access_token_env"`
		} `yaml:"kite"`
	} `yaml:"market_data"`
	Signal struct {
		ShortWindow int `yaml:"short_window"`
		LongWindow  int `yaml:"long_window"`
	} `yaml:"signal"`
	Sentiment struct {
		Enabled      bool   `yaml:"enabled"`
		Source       string `yaml:"source"`
		MaxHeadlines int    `yaml:"max_headlines"`
		NewsAPI      struct {
			BaseURL   string `yaml:"base_url"`
			APIKeyEnv string `yaml:"api_key_env"`
			Language  string `yaml:"language"`
		} `yaml:"newsapi"`
		Scrape struct {
			TimeoutSeconds int `yaml:"timeout_seconds"`
		} `yaml:"scrape"`
	} `yaml:"sentiment"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.Sentiment.Enabled = true
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8501"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 30
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 60
	}
	if c.Dashboard.Title == "" {
		c.Dashboard.Title = "Hexagon"
	}
	if c.Dashboard.Tagline == "" {
		c.Dashboard.Tagline = "Smarter Stock Insights. Instantly."
	}
	if c.Dashboard.LogoURL == "" {
		c.Dashboard.LogoURL = "https://raw.githubusercontent.com/Hexagonfcc/stock-dashboard/main/hexagon_logo.png"
	}
	if c.Dashboard.DefaultSymbol == "" {
		c.Dashboard.DefaultSymbol = "RELIANCE.NS"
	}
	if c.Dashboard.ChartDays == 0 {
		c.Dashboard.ChartDays = 126
	}
	if c.MarketData.Source == "" {
		c.MarketData.Source = SourceYahoo
	}
	if c.MarketData.HistoryDays == 0 {
		c.MarketData.HistoryDays = 300
	}
	if c.MarketData.TimeoutSeconds == 0 {
		c.MarketData.TimeoutSeconds = 30
	}
	if c.MarketData.Yahoo.ChartURL == "" {
		c.MarketData.Yahoo.ChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if c.MarketData.Yahoo.QuoteURL == "" {
		c.MarketData.Yahoo.QuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"
	}
	if c.MarketData.Kite.APIKeyEnv == "" {
		c.MarketData.Kite.APIKeyEnv = "KITE_API_KEY"
	}
	if c.MarketData.Kite.AccessTokenEnv == "" {
		c.MarketData.Kite.AccessTokenEnv = "KITE_ACCESS_TOKEN"
	}
	if c.Signal.ShortWindow == 0 {
		c.Signal.ShortWindow = 50
	}
	if c.Signal.LongWindow == 0 {
		c.Signal.LongWindow = 200
	}
	if c.Sentiment.Source == "" {
		c.Sentiment.Source = SourceMock
	}
	if c.Sentiment.MaxHeadlines == 0 {
		c.Sentiment.MaxHeadlines = 5
	}
	if c.Sentiment.NewsAPI.BaseURL == "" {
		c.Sentiment.NewsAPI.BaseURL = "https://newsapi.org"
	}
	if c.Sentiment.NewsAPI.APIKeyEnv == "" {
		c.Sentiment.NewsAPI.APIKeyEnv = "NEWS_API_KEY"
	}
	if c.Sentiment.NewsAPI.Language == "" {
		c.Sentiment.NewsAPI.Language = "en"
	}
	if c.Sentiment.Scrape.TimeoutSeconds == 0 {
		c.Sentiment.Scrape.TimeoutSeconds = 20
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DASHBOARD_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("MARKET_DATA_SOURCE"); v != "" {
		c.MarketData.Source = v
	}
	if v := os.Getenv("SENTIMENT_SOURCE"); v != "" {
		c.Sentiment.Source = v
	}
	c.MarketData.Source = strings.ToUpper(c.MarketData.Source)
	c.Sentiment.Source = strings.ToUpper(c.Sentiment.Source)
}

func (c *Config) Validate() error {
	switch c.MarketData.Source {
	case SourceStatic, SourceYahoo, SourceKite:
	default:
		return fmt.Errorf("invalid market_data.source '%s': must be 'STATIC', 'YAHOO' or 'KITE'", c.MarketData.Source)
	}
	switch c.Sentiment.Source {
	case SourceMock, SourceNewsAPI, SourceScrape:
	default:
		return fmt.Errorf("invalid sentiment.source '%s': must be 'MOCK', 'NEWSAPI' or 'SCRAPE'", c.Sentiment.Source)
	}
	if c.Signal.ShortWindow <= 0 || c.Signal.LongWindow <= 0 {
		return errors.New("signal windows must be positive")
	}
	if c.Signal.ShortWindow > c.Signal.LongWindow {
		return fmt.Errorf("signal.short_window (%d) must not exceed signal.long_window (%d)", c.Signal.ShortWindow, c.Signal.LongWindow)
	}
	if c.MarketData.HistoryDays < c.Signal.LongWindow {
		return fmt.Errorf("market_data.history_days (%d) must cover signal.long_window (%d)", c.MarketData.HistoryDays, c.Signal.LongWindow)
	}
	if c.Sentiment.MaxHeadlines < 0 {
		return fmt.Errorf("sentiment.max_headlines must be >= 0, got %d", c.Sentiment.MaxHeadlines)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server.mode '%s': must be 'debug', 'release' or 'test'", c.Server.Mode)
	}
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return fmt.Errorf("invalid server.addr '%s': %w", c.Server.Addr, err)
	}
	return nil
}

// LoadConfig reads a YAML file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	c := Config{}
	c.Sentiment.Enabled = true

	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	c.applyDefaults()
	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
