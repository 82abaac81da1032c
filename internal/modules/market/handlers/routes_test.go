package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	prices map[string]*float64
}

func (f *fakeFeed) GetPrices(symbols []string) (map[string]*float64, error) {
	result := make(map[string]*float64, len(symbols))
	for _, sym := range symbols {
		result[sym] = f.prices[sym]
	}
	return result, nil
}

func fp(v float64) *float64 { return &v }

func TestRegisterRoutes(t *testing.T) {
	handler := NewHandler(&fakeFeed{}, zerolog.Nop())

	router := chi.NewRouter()
	require.NotPanics(t, func() {
		handler.RegisterRoutes(router)
	}, "RegisterRoutes should not panic")

	req := httptest.NewRequest("POST", "/market/prices", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusNotFound, rec.Code, "route should be registered")
}

func TestGetPrices(t *testing.T) {
	handler := NewHandler(&fakeFeed{prices: map[string]*float64{"AAPL": fp(187.5)}}, zerolog.Nop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	req := httptest.NewRequest("POST", "/market/prices", strings.NewReader(`{"symbols":["AAPL","NOPE"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Prices map[string]*float64 `json:"prices"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Prices["AAPL"])
	assert.Equal(t, 187.5, *body.Prices["AAPL"])

	val, ok := body.Prices["NOPE"]
	assert.True(t, ok, "unknown symbol still present")
	assert.Nil(t, val)
}

func TestGetPrices_SymbolsRequired(t *testing.T) {
	handler := NewHandler(&fakeFeed{}, zerolog.Nop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	req := httptest.NewRequest("POST", "/market/prices", strings.NewReader(`{"symbols":[]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "symbols is required")
}
