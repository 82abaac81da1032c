package scheduler

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSymbolSource struct {
	symbols []string
	err     error
}

func (f *fakeSymbolSource) DistinctSymbols() ([]string, error) {
	return f.symbols, f.err
}

type fakeFeed struct {
	prices     map[string]*float64
	err        error
	gotSymbols []string
	calls      int
}

func (f *fakeFeed) GetPrices(symbols []string) (map[string]*float64, error) {
	f.calls++
	f.gotSymbols = symbols
	return f.prices, f.err
}

func TestRefreshPricesJob_WarmsCacheForHeldSymbols(t *testing.T) {
	price := 120.0
	feed := &fakeFeed{prices: map[string]*float64{"AAPL": &price, "VOO": nil}}
	job := NewRefreshPricesJob(&fakeSymbolSource{symbols: []string{"AAPL", "VOO"}}, feed, zerolog.Nop())

	require.NoError(t, job.Run())
	assert.Equal(t, []string{"AAPL", "VOO"}, feed.gotSymbols)
}

func TestRefreshPricesJob_NoSymbolsSkipsFeed(t *testing.T) {
	feed := &fakeFeed{}
	job := NewRefreshPricesJob(&fakeSymbolSource{}, feed, zerolog.Nop())

	require.NoError(t, job.Run())
	assert.Zero(t, feed.calls)
}

func TestRefreshPricesJob_PropagatesErrors(t *testing.T) {
	job := NewRefreshPricesJob(&fakeSymbolSource{err: errors.New("db closed")}, &fakeFeed{}, zerolog.Nop())
	assert.Error(t, job.Run())

	job = NewRefreshPricesJob(
		&fakeSymbolSource{symbols: []string{"AAPL"}},
		&fakeFeed{err: errors.New("feed down")},
		zerolog.Nop(),
	)
	assert.Error(t, job.Run())
}

func TestJobName(t *testing.T) {
	job := NewRefreshPricesJob(&fakeSymbolSource{}, &fakeFeed{}, zerolog.Nop())
	assert.Equal(t, "refresh_prices", job.Name())
}
