package prices

import (
	"context"

	"golang.org/x/sync/errgroup"

	"moneyview/internal/core"
)

// Lookup is what the report assembly needs from a quote provider.
type Lookup interface {
	CurrencyRate(ctx context.Context, symbol string) *float64
	StockPrice(ctx context.Context, symbol string) *float64
}

var _ Lookup = (*Client)(nil)

// maxConcurrentLookups bounds the fan-out so a long symbol list does not
// open an unbounded number of connections.
const maxConcurrentLookups = 4

// FetchQuotes looks up every configured symbol concurrently. Results keep
// the configured order, and one symbol's failure never affects its
// siblings; failed entries simply carry a nil price.
func FetchQuotes(ctx context.Context, lookup Lookup, currencies, stocks []string) ([]core.CurrencyRate, []core.StockPrice) {
	rates := make([]core.CurrencyRate, len(currencies))
	quotes := make([]core.StockPrice, len(stocks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for i, symbol := range currencies {
		g.Go(func() error {
			rates[i] = core.CurrencyRate{Currency: symbol, Rate: lookup.CurrencyRate(ctx, symbol)}
			return nil
		})
	}
	for i, symbol := range stocks {
		g.Go(func() error {
			quotes[i] = core.StockPrice{Stock: symbol, Price: lookup.StockPrice(ctx, symbol)}
			return nil
		})
	}

	// Workers degrade failures to nil prices and never return an error.
	_ = g.Wait()

	return rates, quotes
}
