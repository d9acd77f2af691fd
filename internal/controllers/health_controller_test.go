package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgsite/internal/events"
	"kgsite/internal/geo"
	"kgsite/internal/storage"
)

func TestHealth_ReturnsOK(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("kg_geo", "{}"))
	require.NoError(t, store.Set("kg_analytics_seed", "1"))
	bus := events.NewBus()
	bus.Subscribe(geo.EventUpdate, func(string, any) {})
	hc := NewHealthController(store, bus)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "kenetg-backend", resp["service"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
	assert.Equal(t, float64(2), resp["stored_keys"])
	assert.Equal(t, float64(1), resp["consent_listeners"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(storage.NewMemoryStore(), events.NewBus())

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestApiHealth(t *testing.T) {
	hc := NewHealthController(storage.NewMemoryStore(), events.NewBus())

	rr := httptest.NewRecorder()
	hc.ApiHealth(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","service":"kenetg-backend"}`, rr.Body.String())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0h0m0s"},
		{"one minute", 60 * time.Second, "0h1m0s"},
		{"one hour", time.Hour, "1h0m0s"},
		{"mixed", time.Hour + time.Minute + time.Second, "1h1m1s"},
		{"over a day", 26*time.Hour + 5*time.Second, "26h0m5s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}
