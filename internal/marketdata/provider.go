package marketdata

import (
	"context"
	"strings"
)

// Quote is a point-in-time price for a single symbol.
type Quote struct {
	Symbol string
	Price  float64
}

// Snapshot is a compact market context block handed to the strategy prompt.
type Snapshot struct {
	Text      string
	Quotes    []Quote
	Simulated bool
}

// Provider supplies market context for a set of symbols.
type Provider interface {
	Snapshot(ctx context.Context, symbols []string) (Snapshot, error)
}

// preferenceSymbols maps instrument preferences to representative tickers.
var preferenceSymbols = map[string][]string{
	"etf":    {"VTI", "VXUS", "VGT"},
	"stocks": {"VOO", "QQQ", "SPY"},
	"bonds":  {"BND", "BNDX", "AGG"},
}

// defaultSymbols is the diversified fallback when no preference matched.
var defaultSymbols = []string{"VTI", "BND", "VXUS"}

// SymbolsForPreferences resolves instrument preferences to a deduplicated
// ticker list, falling back to a diversified default set.
func SymbolsForPreferences(preferences []string) []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, pref := range preferences {
		for _, symbol := range preferenceSymbols[strings.ToLower(pref)] {
			if seen[symbol] {
				continue
			}
			seen[symbol] = true
			symbols = append(symbols, symbol)
		}
	}
	if len(symbols) == 0 {
		return append([]string(nil), defaultSymbols...)
	}
	return symbols
}
