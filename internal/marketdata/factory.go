package marketdata

import (
	"fmt"
	"os"
	"time"

	"github.com/samarth5630/stock-dashboard/internal/interfaces"
	"github.com/samarth5630/stock-dashboard/internal/marketdata/marketobs"
	"github.com/samarth5630/stock-dashboard/internal/store"
)

// New builds the configured market data source, wrapped for observability.
func New(cfg *store.Config) (interfaces.MarketData, error) {
	md := cfg.MarketData
	var src interfaces.MarketData

	switch md.Source {
	case store.SourceYahoo:
		src = NewYahooSource(md.Yahoo.ChartURL, md.Yahoo.QuoteURL, time.Duration(md.TimeoutSeconds)*time.Second)
	case store.SourceKite:
		k, err := NewKiteSource(os.Getenv(md.Kite.APIKeyEnv), os.Getenv(md.Kite.AccessTokenEnv))
		if err != nil {
			return nil, fmt.Errorf("%w (set %s and %s)", err, md.Kite.APIKeyEnv, md.Kite.AccessTokenEnv)
		}
		src = k
	case store.SourceStatic:
		src = NewStaticSource(time.Time{})
	default:
		return nil, fmt.Errorf("unknown market data source %q", md.Source)
	}

	return marketobs.Wrap(md.Source, src), nil
}
