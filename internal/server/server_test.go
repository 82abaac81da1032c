package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamarw/nestegg/internal/config"
)

type stubModule struct {
	registered bool
}

func (m *stubModule) RegisterRoutes(r chi.Router) {
	m.registered = true
	r.Get("/stub", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func newTestServer(t *testing.T, modules ...RouteRegistrar) *Server {
	t.Helper()
	return New(Config{
		Log: zerolog.Nop(),
		Cfg: &config.Config{
			Port:             8000,
			DevMode:          true,
			CORSAllowOrigins: []string{"*"},
		},
		Modules:        modules,
		SystemHandlers: NewSystemHandlers(nil, t.TempDir(), zerolog.Nop()),
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestModulesMountedUnderAPIV1(t *testing.T) {
	module := &stubModule{}
	srv := newTestServer(t, module)

	require.True(t, module.registered)

	req := httptest.NewRequest("GET", "/api/v1/stub", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestSystemStatus(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/system/status", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status SystemStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.GreaterOrEqual(t, status.UptimeSeconds, 0.0)
	assert.Greater(t, status.Goroutines, 0)
	assert.Empty(t, status.Databases)
}
