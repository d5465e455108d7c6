package marketdata

import (
	"fmt"
	"strings"

	"github.com/samarth5630/stock-dashboard/internal/engine"
)

const maxSymbolLen = 32

// NormalizeSymbol trims and upper-cases a user-entered ticker. Anything outside
// letters, digits and . & ^ - is rejected.
func NormalizeSymbol(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("%w: empty", engine.ErrInvalidSymbol)
	}
	if len(s) > maxSymbolLen {
		return "", fmt.Errorf("%w: longer than %d characters", engine.ErrInvalidSymbol, maxSymbolLen)
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '&', r == '^', r == '-':
		default:
			return "", fmt.Errorf("%w: unexpected character %q in %q", engine.ErrInvalidSymbol, r, s)
		}
	}
	return s, nil
}

// Exchange splits a Yahoo-style ticker into the Kite exchange and trading symbol.
// RELIANCE.NS and bare RELIANCE map to NSE, RELIANCE.BO maps to BSE.
func Exchange(symbol string) (exchange, tradingSymbol string) {
	switch {
	case strings.HasSuffix(symbol, ".NS"):
		return "NSE", strings.TrimSuffix(symbol, ".NS")
	case strings.HasSuffix(symbol, ".BO"):
		return "BSE", strings.TrimSuffix(symbol, ".BO")
	default:
		return "NSE", symbol
	}
}
