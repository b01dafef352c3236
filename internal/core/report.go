package core

// CurrencyRate is one configured currency with its fetched rate. A nil
// rate means the lookup failed or timed out; that is expected data, not an
// error.
type CurrencyRate struct {
	Currency string   `json:"currency"`
	Rate     *float64 `json:"rate"`
}

// StockPrice is one configured stock ticker with its fetched quote.
type StockPrice struct {
	Stock string   `json:"stock"`
	Price *float64 `json:"price"`
}

// Report is the full events payload. The "expences" spelling is part of
// the wire contract consumed by existing UIs and must not be corrected.
type Report struct {
	Expenses      ExpenseSummary `json:"expences"`
	Income        IncomeSummary  `json:"income"`
	CurrencyRates []CurrencyRate `json:"currency_rates"`
	StockPrices   []StockPrice   `json:"stock_prices"`
}
