package prices

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLookup answers from fixed maps; missing symbols get nil.
type stubLookup struct {
	rates  map[string]float64
	stocks map[string]float64
}

func (s *stubLookup) CurrencyRate(_ context.Context, symbol string) *float64 {
	if v, ok := s.rates[symbol]; ok {
		return &v
	}
	return nil
}

func (s *stubLookup) StockPrice(_ context.Context, symbol string) *float64 {
	if v, ok := s.stocks[symbol]; ok {
		return &v
	}
	return nil
}

func TestFetchQuotesPreservesOrderAndDegradesSiblingsIndependently(t *testing.T) {
	lookup := &stubLookup{
		rates:  map[string]float64{"USD": 75.0, "EUR": 85.0},
		stocks: map[string]float64{"AAPL": 150.0},
	}

	rates, stocks := FetchQuotes(context.Background(),
		lookup, []string{"EUR", "XXX", "USD"}, []string{"AAPL", "ZZZZ"})

	require.Len(t, rates, 3)
	assert.Equal(t, "EUR", rates[0].Currency)
	assert.Equal(t, 85.0, *rates[0].Rate)
	assert.Equal(t, "XXX", rates[1].Currency)
	assert.Nil(t, rates[1].Rate)
	assert.Equal(t, "USD", rates[2].Currency)
	assert.Equal(t, 75.0, *rates[2].Rate)

	require.Len(t, stocks, 2)
	assert.Equal(t, 150.0, *stocks[0].Price)
	assert.Nil(t, stocks[1].Price)
}

func TestFetchQuotesEmpty(t *testing.T) {
	rates, stocks := FetchQuotes(context.Background(), &stubLookup{}, nil, nil)
	assert.Empty(t, rates)
	assert.Empty(t, stocks)
}
