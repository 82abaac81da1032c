package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/itamarw/nestegg/internal/clients/marketdata"
)

// SymbolSource lists the symbols whose prices are worth keeping warm.
type SymbolSource interface {
	DistinctSymbols() ([]string, error)
}

// RefreshPricesJob pre-fetches quotes for every held symbol so dashboard
// reads hit a warm cache.
type RefreshPricesJob struct {
	symbols SymbolSource
	feed    marketdata.PriceFeed
	log     zerolog.Logger
}

// NewRefreshPricesJob creates a new price refresh job
func NewRefreshPricesJob(symbols SymbolSource, feed marketdata.PriceFeed, log zerolog.Logger) *RefreshPricesJob {
	return &RefreshPricesJob{
		symbols: symbols,
		feed:    feed,
		log:     log.With().Str("job", "refresh_prices").Logger(),
	}
}

// Name returns the job name
func (j *RefreshPricesJob) Name() string {
	return "refresh_prices"
}

// Run fetches prices for all held symbols. The feed caches whatever it
// manages to fetch; missing symbols are not an error.
func (j *RefreshPricesJob) Run() error {
	symbols, err := j.symbols.DistinctSymbols()
	if err != nil {
		return fmt.Errorf("listing symbols: %w", err)
	}
	if len(symbols) == 0 {
		j.log.Debug().Msg("No held symbols, nothing to refresh")
		return nil
	}

	prices, err := j.feed.GetPrices(symbols)
	if err != nil {
		return fmt.Errorf("fetching prices: %w", err)
	}

	resolved := 0
	for _, price := range prices {
		if price != nil {
			resolved++
		}
	}
	j.log.Info().
		Int("symbols", len(symbols)).
		Int("resolved", resolved).
		Msg("Price cache refreshed")

	return nil
}
