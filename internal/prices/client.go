// Package prices fetches currency rates and stock quotes for the report's
// market data section. Lookups degrade to a nil price on any failure; a
// missing quote is expected report data, never an error.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"moneyview/internal/cache"
)

// Config wires the two quote providers. Base URLs are configurable so
// tests can point them at a local server.
type Config struct {
	CurrencyBaseURL string // e.g. https://api.exchangerate-api.com/v4/latest
	StockBaseURL    string // e.g. https://financialmodelingprep.com/api/v3/quote
	StockAPIKey     string
	BaseCurrency    string // rates are expressed as units of this currency per symbol
	Timeout         time.Duration
	RetryMaxElapsed time.Duration
	CacheSize       int
	CacheTTL        time.Duration
}

type Client struct {
	cfg    Config
	http   *http.Client
	cache  *cache.LRU[float64]
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryMaxElapsed <= 0 {
		cfg.RetryMaxElapsed = 15 * time.Second
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 128
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		cache:  cache.NewLRU[float64](cfg.CacheSize, cfg.CacheTTL),
		logger: logger,
	}
}

// CurrencyRate returns the rate of the configured base currency per one
// unit of symbol, or nil when the provider could not answer.
func (c *Client) CurrencyRate(ctx context.Context, symbol string) *float64 {
	if v, ok := c.cache.Get("currency:" + symbol); ok {
		return &v
	}

	body, err := c.getWithRetry(ctx, fmt.Sprintf("%s/%s", c.cfg.CurrencyBaseURL, url.PathEscape(symbol)))
	if err != nil {
		c.logger.Warn("currency lookup failed", "symbol", symbol, "error", err)
		return nil
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Warn("currency response malformed", "symbol", symbol, "error", err)
		return nil
	}
	rate, ok := payload.Rates[c.cfg.BaseCurrency]
	if !ok {
		c.logger.Warn("currency response has no rate for base",
			"symbol", symbol, "base", c.cfg.BaseCurrency)
		return nil
	}

	c.cache.Set("currency:"+symbol, rate)
	return &rate
}

// StockPrice returns the latest quote for symbol, or nil when the provider
// could not answer.
func (c *Client) StockPrice(ctx context.Context, symbol string) *float64 {
	if v, ok := c.cache.Get("stock:" + symbol); ok {
		return &v
	}

	u := fmt.Sprintf("%s/%s?apikey=%s",
		c.cfg.StockBaseURL, url.PathEscape(symbol), url.QueryEscape(c.cfg.StockAPIKey))
	body, err := c.getWithRetry(ctx, u)
	if err != nil {
		c.logger.Warn("stock lookup failed", "symbol", symbol, "error", err)
		return nil
	}

	var payload []struct {
		Price float64 `json:"price"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		c.logger.Warn("stock response malformed", "symbol", symbol, "error", err)
		return nil
	}

	c.cache.Set("stock:"+symbol, payload[0].Price)
	return &payload[0].Price
}

// getWithRetry performs a GET with exponential backoff. Server-side errors
// retry until the elapsed cap; client-side errors are permanent.
func (c *Client) getWithRetry(ctx context.Context, rawURL string) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = c.cfg.RetryMaxElapsed

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("provider returned %d", resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("provider returned %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}
