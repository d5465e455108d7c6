package news

import (
	"context"
	"fmt"

	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/types"
)

// MockSource returns a fixed set of headlines so the dashboard works without
// a news API key.
type MockSource struct{}

var _ interfaces.HeadlineSource = MockSource{}

func (MockSource) Name() string { return "mock" }

func (MockSource) Headlines(_ context.Context, symbol, company string, limit int) ([]types.Headline, error) {
	if company == "" {
		company = symbol
	}
	all := []types.Headline{
		{Title: fmt.Sprintf("%s sees steady growth amid market volatility.", company), Source: "mock"},
		{Title: "Investors are eyeing this stock after recent financial reports.", Source: "mock"},
		{Title: "Analysts suggest this could be a good time to review positions.", Source: "mock"},
	}
	if limit >= 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}
