package news

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/news/newsobs"
	"github.com/samarth5630/stock-dashboard/internal/sentiment"
	"github.com/samarth5630/stock-dashboard/internal/store"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

// SourceDisabled is reported as the sentiment source when scoring is turned off.
const SourceDisabled = "disabled"

// Service fetches headlines for a company and scores them. It holds no
// per-request state; every call goes to the source.
type Service struct {
	source       interfaces.HeadlineSource
	scorer       interfaces.Scorer
	maxHeadlines int
	enabled      bool
}

var _ interfaces.SentimentProvider = (*Service)(nil)

// ServiceConfig configures the news sentiment service
type ServiceConfig struct {
	MaxHeadlines int  // Maximum headlines scored per lookup
	Enabled      bool // Whether sentiment analysis is enabled
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxHeadlines: 5,
		Enabled:      true,
	}
}

// NewService creates a sentiment service over the given source and scorer
func NewService(source interfaces.HeadlineSource, scorer interfaces.Scorer, cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	if scorer == nil {
		scorer = sentiment.NewVaderScorer()
	}
	return &Service{
		source:       source,
		scorer:       scorer,
		maxHeadlines: cfg.MaxHeadlines,
		enabled:      cfg.Enabled,
	}
}

// Sentiment scores up to MaxHeadlines headlines and averages them. A source
// failure is returned to the caller; no headlines is a neutral 0.
func (s *Service) Sentiment(ctx context.Context, symbol, company string) (types.SentimentResult, error) {
	if !s.enabled {
		return types.SentimentResult{Source: SourceDisabled}, nil
	}

	headlines, err := s.source.Headlines(ctx, symbol, company, s.maxHeadlines)
	if err != nil {
		return types.SentimentResult{}, fmt.Errorf("%s headlines: %w", s.source.Name(), err)
	}
	if len(headlines) > s.maxHeadlines {
		headlines = headlines[:s.maxHeadlines]
	}

	scored := make([]types.ScoredHeadline, len(headlines))
	scores := make([]float64, len(headlines))
	for i, h := range headlines {
		scores[i] = s.scorer.Score(h.Title)
		scored[i] = types.ScoredHeadline{Headline: h, Score: scores[i]}
	}

	result := types.SentimentResult{
		Source:    s.source.Name(),
		Score:     sentiment.Aggregate(scores),
		Headlines: scored,
	}
	logger.Debug(ctx, "Headlines scored", "symbol", symbol, "source", result.Source, "count", len(scored), "score", result.Score)
	return result, nil
}

// New builds the configured sentiment provider, wrapped for observability.
func New(cfg *store.Config) (interfaces.SentimentProvider, error) {
	sc := cfg.Sentiment

	var src interfaces.HeadlineSource
	switch sc.Source {
	case store.SourceMock:
		src = MockSource{}
	case store.SourceNewsAPI:
		n, err := NewNewsAPISource(sc.NewsAPI.BaseURL, os.Getenv(sc.NewsAPI.APIKeyEnv), sc.NewsAPI.Language,
			time.Duration(cfg.MarketData.TimeoutSeconds)*time.Second)
		if err != nil {
			return nil, fmt.Errorf("%w (set %s)", err, sc.NewsAPI.APIKeyEnv)
		}
		src = n
	case store.SourceScrape:
		src = NewScrapeSource(time.Duration(sc.Scrape.TimeoutSeconds) * time.Second)
	default:
		return nil, fmt.Errorf("unknown sentiment source %q", sc.Source)
	}

	svc := NewService(src, sentiment.NewVaderScorer(), &ServiceConfig{
		MaxHeadlines: sc.MaxHeadlines,
		Enabled:      sc.Enabled,
	})
	return newsobs.Wrap(svc), nil
}
