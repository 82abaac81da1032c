// Package marketdata provides the price-feed client for the market-data API.
package marketdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/itamarw/nestegg/internal/clientdata"
)

// PriceFeed is the contract consumed by the portfolio and scheduler modules.
// A nil price in the result map means the symbol is unknown to the feed;
// callers fall back to purchase-price valuation per symbol.
type PriceFeed interface {
	GetPrices(symbols []string) (map[string]*float64, error)
}

// Client fetches current prices from the market-data API.
// Responses are cached per symbol; on API failure stale cached prices are
// served (stale data > no data), and symbols the feed does not know stay nil.
type Client struct {
	baseURL   string
	client    *http.Client
	log       zerolog.Logger
	cacheRepo *clientdata.Repository
	cacheTTL  time.Duration
}

// NewClient creates a new market-data client.
// cacheRepo is optional - if nil, caching is disabled.
func NewClient(baseURL string, cacheRepo *clientdata.Repository, cacheTTL time.Duration, log zerolog.Logger) *Client {
	if cacheTTL <= 0 {
		cacheTTL = clientdata.TTLCurrentPrice
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log.With().Str("client", "marketdata").Logger(),
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
	}
}

// cachedPrice is the structure stored in the cache.
type cachedPrice struct {
	Price float64 `msgpack:"price"`
}

// GetPrices fetches current prices for a set of symbols in one call.
// Symbols are uppercased before lookup. The result always contains an entry
// for every requested symbol; unknown symbols map to nil. Partial results
// are expected and never treated as an error.
func (c *Client) GetPrices(symbols []string) (map[string]*float64, error) {
	result := make(map[string]*float64, len(symbols))
	if len(symbols) == 0 {
		return result, nil
	}

	// Normalize and de-duplicate
	seen := make(map[string]bool, len(symbols))
	normalized := make([]string, 0, len(symbols))
	for _, s := range symbols {
		sym := strings.ToUpper(strings.TrimSpace(s))
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		normalized = append(normalized, sym)
		result[sym] = nil
	}

	// Serve fresh cache hits, collect the rest for one batch request
	var toFetch []string
	for _, sym := range normalized {
		if price, ok := c.getFresh(sym); ok {
			p := price
			result[sym] = &p
			continue
		}
		toFetch = append(toFetch, sym)
	}

	if len(toFetch) == 0 {
		return result, nil
	}

	fetched, err := c.fetchPrices(toFetch)
	if err != nil {
		// Feed failure degrades valuation accuracy, it never aborts the
		// call. Backfill what we can from stale cache entries.
		c.log.Warn().Err(err).Int("symbols", len(toFetch)).Msg("Price fetch failed, falling back to stale cache")
		for _, sym := range toFetch {
			if price, ok := c.getStale(sym); ok {
				p := price
				result[sym] = &p
			}
		}
		return result, nil
	}

	for sym, price := range fetched {
		if price == nil {
			continue
		}
		p := *price
		result[sym] = &p
		c.storeCache(sym, p)
	}

	return result, nil
}

// fetchPrices performs the batch request against the market-data API.
func (c *Client) fetchPrices(symbols []string) (map[string]*float64, error) {
	payload, err := json.Marshal(map[string][]string{"symbols": symbols})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/api/v1/market/prices"
	c.log.Debug().Str("url", url).Int("symbols", len(symbols)).Msg("Fetching prices")

	resp, err := c.client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var body struct {
		Prices map[string]*float64 `json:"prices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return body.Prices, nil
}

func (c *Client) getFresh(symbol string) (float64, bool) {
	if c.cacheRepo == nil {
		return 0, false
	}
	var cached cachedPrice
	ok, err := c.cacheRepo.GetIfFresh("current_prices", symbol, &cached)
	if err != nil || !ok {
		return 0, false
	}
	return cached.Price, true
}

func (c *Client) getStale(symbol string) (float64, bool) {
	if c.cacheRepo == nil {
		return 0, false
	}
	var cached cachedPrice
	ok, err := c.cacheRepo.Get("current_prices", symbol, &cached)
	if err != nil || !ok {
		return 0, false
	}
	return cached.Price, true
}

func (c *Client) storeCache(symbol string, price float64) {
	if c.cacheRepo == nil {
		return
	}
	if err := c.cacheRepo.Store("current_prices", symbol, cachedPrice{Price: price}, c.cacheTTL); err != nil {
		c.log.Debug().Err(err).Str("symbol", symbol).Msg("Failed to cache price")
	}
}
