package news

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/samarth5630/stock-dashboard/internal/api"
	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

// ErrMissingAPIKey is returned when the NewsAPI source is selected without a key.
var ErrMissingAPIKey = errors.New("news api key is not set")

// removedTitle marks articles NewsAPI has withdrawn.
const removedTitle = "[Removed]"

// NewsAPISource searches newsapi.org's /v2/everything endpoint.
type NewsAPISource struct {
	client   *api.Client
	language string
}

var _ interfaces.HeadlineSource = (*NewsAPISource)(nil)

func NewNewsAPISource(baseURL, apiKey, language string, timeout time.Duration) (*NewsAPISource, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &NewsAPISource{
		client: api.NewClient(
			api.WithBaseURL(strings.TrimRight(baseURL, "/")),
			api.WithTimeout(timeout),
			api.WithHeaders(api.NewsAPIHeaders(apiKey)),
			api.WithLogging(true),
		),
		language: language,
	}, nil
}

func (n *NewsAPISource) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

func (n *NewsAPISource) Headlines(ctx context.Context, symbol, company string, limit int) ([]types.Headline, error) {
	query := company
	if query == "" {
		query = symbol
	}
	if limit <= 0 {
		return nil, nil
	}

	resp, err := n.client.GET(ctx, "/v2/everything", url.Values{
		"q":        {query},
		"language": {n.language},
		"sortBy":   {"publishedAt"},
		"pageSize": {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, fmt.Errorf("newsapi search %q: %w", query, err)
	}

	var body newsAPIResponse
	if err := resp.ParseJSON(&body); err != nil {
		return nil, fmt.Errorf("newsapi search %q: %w", query, err)
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("newsapi search %q: %s: %s", query, body.Code, body.Message)
	}

	out := make([]types.Headline, 0, len(body.Articles))
	for _, a := range body.Articles {
		title := cleanTitle(a.Title, a.Source.Name)
		if title == "" || title == removedTitle {
			continue
		}
		out = append(out, types.Headline{
			Title:       title,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// cleanTitle strips markup and entities that some publishers leave in titles,
// and the trailing " - Publisher" suffix NewsAPI appends.
func cleanTitle(raw, source string) string {
	text := raw
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")
	if source != "" {
		text = strings.TrimSuffix(text, " - "+source)
	}
	return text
}
