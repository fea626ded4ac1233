package marketdata

import (
	"context"
	"fmt"
	"strings"

	md "github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// AlpacaProvider fetches latest trade prices from the Alpaca market data API.
// The client reads APCA_API_KEY_ID and APCA_API_SECRET_KEY from the
// environment.
type AlpacaProvider struct {
	client *md.Client
}

var _ Provider = (*AlpacaProvider)(nil)

// NewAlpacaProvider returns a provider backed by the Alpaca data API.
func NewAlpacaProvider() *AlpacaProvider {
	return &AlpacaProvider{
		client: md.NewClient(md.ClientOpts{}),
	}
}

// Snapshot fetches the latest trade for each symbol and renders a market
// context block. A symbol with no trade data is skipped rather than failing
// the whole snapshot.
func (p *AlpacaProvider) Snapshot(ctx context.Context, symbols []string) (Snapshot, error) {
	var quotes []Quote
	var lines []string

	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return Snapshot{}, err
		}

		trade, err := p.client.GetLatestTrade(symbol, md.GetLatestTradeRequest{})
		if err != nil {
			return Snapshot{}, fmt.Errorf("latest trade for %s: %w", symbol, err)
		}
		if trade == nil {
			continue
		}

		quotes = append(quotes, Quote{Symbol: symbol, Price: trade.Price})
		lines = append(lines, fmt.Sprintf("%s: latest trade $%.2f", symbol, trade.Price))
	}

	if len(quotes) == 0 {
		return Snapshot{}, fmt.Errorf("no market data for symbols %v", symbols)
	}

	return Snapshot{
		Text:   "Current market data:\n" + strings.Join(lines, "\n"),
		Quotes: quotes,
	}, nil
}
