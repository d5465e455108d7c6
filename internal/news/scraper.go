package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/logger"
	"github.com/samarth5630/stock-dashboard/internal/marketdata"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ScrapeSource collects headlines from financial news sites' tag pages, with
// Google News as a fallback when none of them yield anything.
type ScrapeSource struct {
	sources   []SiteSource
	googleURL string
	timeout   time.Duration
}

var _ interfaces.HeadlineSource = (*ScrapeSource)(nil)

// SiteSource defines a news site to scrape
type SiteSource struct {
	Name       string
	BaseURL    string
	SearchPath string // {symbol} is replaced with the lower-case trading symbol
	Selectors  HeadlineSelectors
	RateLimit  time.Duration
}

// HeadlineSelectors defines CSS selectors for extracting headline data
type HeadlineSelectors struct {
	Container   string
	Title       string
	URL         string
	PublishedAt string
}

// NewScrapeSource creates a scraper with the default Indian financial news sites
func NewScrapeSource(timeout time.Duration) *ScrapeSource {
	return &ScrapeSource{
		sources:   defaultSites(),
		googleURL: "https://news.google.com/search",
		timeout:   timeout,
	}
}

func defaultSites() []SiteSource {
	return []SiteSource{
		{
			Name:       "MoneyControl",
			BaseURL:    "https://www.moneycontrol.com",
			SearchPath: "/news/tags/{symbol}.html",
			Selectors: HeadlineSelectors{
				Container:   "li.clearfix",
				Title:       "h2 a, h3 a",
				URL:         "h2 a, h3 a",
				PublishedAt: "span.ago",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:       "EconomicTimes",
			BaseURL:    "https://economictimes.indiatimes.com",
			SearchPath: "/topic/{symbol}",
			Selectors: HeadlineSelectors{
				Container:   "div.story-box",
				Title:       "a",
				URL:         "a",
				PublishedAt: "time",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

func (s *ScrapeSource) Name() string { return "scrape" }

// Headlines visits each site in turn until limit headlines are collected. A
// failing site is logged and skipped.
func (s *ScrapeSource) Headlines(ctx context.Context, symbol, company string, limit int) ([]types.Headline, error) {
	if limit <= 0 {
		return nil, nil
	}
	logger.Info(ctx, "Starting headline scraping", "symbol", symbol, "sources", len(s.sources))

	_, tradingSymbol := marketdata.Exchange(symbol)
	all := []types.Headline{}

	for i, site := range s.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := s.scrapeSite(ctx, site, tradingSymbol, limit-len(all))
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to scrape source", err, "source", site.Name, "symbol", symbol)
			continue
		}
		all = append(all, got...)
		if len(all) >= limit {
			break
		}

		if i < len(s.sources)-1 && site.RateLimit > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(site.RateLimit):
			}
		}
	}

	if len(all) == 0 {
		query := company
		if query == "" {
			query = tradingSymbol
		}
		logger.Info(ctx, "No headlines from primary sources, trying Google News", "symbol", symbol)
		got, err := s.scrapeGoogleNews(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		all = got
	}

	logger.Info(ctx, "Headline scraping completed", "symbol", symbol, "headlines", len(all))
	return all, nil
}

func (s *ScrapeSource) newCollector(ctx context.Context, domains ...string) *colly.Collector {
	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.AllowedDomains(domains...),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(s.timeout)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})
	return c
}

func (s *ScrapeSource) scrapeSite(ctx context.Context, site SiteSource, tradingSymbol string, limit int) ([]types.Headline, error) {
	headlines := []types.Headline{}
	seen := map[string]bool{}

	c := s.newCollector(ctx, getDomain(site.BaseURL))

	c.OnHTML(site.Selectors.Container, func(e *colly.HTMLElement) {
		if len(headlines) >= limit {
			return
		}
		title := strings.Join(strings.Fields(e.ChildText(site.Selectors.Title)), " ")
		if title == "" || seen[title] {
			return
		}
		link := e.ChildAttr(site.Selectors.URL, "href")
		if link != "" && !strings.HasPrefix(link, "http") {
			link = site.BaseURL + link
		}
		seen[title] = true
		headlines = append(headlines, types.Headline{
			Title:       title,
			Source:      site.Name,
			URL:         link,
			PublishedAt: strings.TrimSpace(e.ChildText(site.Selectors.PublishedAt)),
		})
	})

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
	})

	searchURL := site.BaseURL + strings.ReplaceAll(site.SearchPath, "{symbol}", url.PathEscape(strings.ToLower(tradingSymbol)))
	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", searchURL, err)
	}
	c.Wait()

	if visitErr != nil && len(headlines) == 0 {
		return nil, fmt.Errorf("failed to scrape %s: %w", searchURL, visitErr)
	}
	return headlines, nil
}

func (s *ScrapeSource) scrapeGoogleNews(ctx context.Context, query string, limit int) ([]types.Headline, error) {
	headlines := []types.Headline{}
	base := getDomain(s.googleURL)

	c := s.newCollector(ctx, base, "www.google.com")

	c.OnHTML("article", func(e *colly.HTMLElement) {
		if len(headlines) >= limit {
			return
		}
		title := strings.TrimSpace(e.ChildText("h3, h4"))
		if title == "" {
			title = strings.TrimSpace(e.ChildText("a"))
		}
		link := e.ChildAttr("a", "href")
		if title == "" || link == "" {
			return
		}
		// Google News links are relative to the site root
		if strings.HasPrefix(link, "./") {
			link = "https://" + base + link[1:]
		}
		headlines = append(headlines, types.Headline{
			Title:  title,
			URL:    link,
			Source: "GoogleNews",
		})
	})

	q := url.Values{
		"q":    {query + " stock news India"},
		"hl":   {"en-IN"},
		"gl":   {"IN"},
		"ceid": {"IN:en"},
	}
	if err := c.Visit(s.googleURL + "?" + q.Encode()); err != nil {
		return nil, fmt.Errorf("failed to scrape Google News: %w", err)
	}
	c.Wait()

	logger.Info(ctx, "Google News scraping completed", "query", query, "headlines", len(headlines))
	return headlines, nil
}

func getDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
