package marketdata

import (
	"context"
	"fmt"
	"strings"
)

// simulatedPrices are stand-in prices for the symbols the advisor commonly
// recommends, used when no market data API is configured.
var simulatedPrices = map[string]float64{
	"VTI":  265.40,
	"VXUS": 64.85,
	"VGT":  610.20,
	"VOO":  520.15,
	"QQQ":  478.30,
	"SPY":  565.50,
	"BND":  73.10,
	"BNDX": 49.60,
	"AGG":  99.25,
}

// SimulatedProvider produces deterministic market context without touching
// any external API.
type SimulatedProvider struct{}

var _ Provider = (*SimulatedProvider)(nil)

// NewSimulatedProvider returns a provider that serves canned prices.
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{}
}

// Snapshot renders a market context block from the canned price table.
// Unknown symbols get a flat placeholder price so the snapshot never fails.
func (p *SimulatedProvider) Snapshot(ctx context.Context, symbols []string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	var quotes []Quote
	var lines []string

	for _, symbol := range symbols {
		price, ok := simulatedPrices[symbol]
		if !ok {
			price = 100.00
		}
		quotes = append(quotes, Quote{Symbol: symbol, Price: price})
		lines = append(lines, fmt.Sprintf("%s: latest trade $%.2f (simulated)", symbol, price))
	}

	return Snapshot{
		Text:      "Simulated market data:\n" + strings.Join(lines, "\n"),
		Quotes:    quotes,
		Simulated: true,
	}, nil
}
