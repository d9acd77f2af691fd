package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"kgsite/internal/events"
	"kgsite/internal/providers"
	"kgsite/internal/storage"
	"kgsite/internal/structures"
	"kgsite/internal/testutil"
)

func testConfig() *structures.Config {
	return &structures.Config{
		AppName: providers.AppName,
		Analytics: structures.AnalyticsConfig{
			DefaultRange: 30,
			MaxRange:     90,
		},
		Geo: structures.GeoConfig{Enabled: true},
	}
}

func newFactory(conf *structures.Config, store storage.Store, metrics providers.MetricsProviderInterface) *providers.ConsentFactory {
	return providers.NewConsentFactory(conf, store, events.NewBus(), &http.Client{}, metrics)
}

func newConsentController(conf *structures.Config) (*ConsentController, *storage.MemoryStore, *testutil.MockMetrics) {
	store := storage.NewMemoryStore()
	metrics := testutil.NewMockMetrics()
	return NewConsentController(&testutil.MockLogger{}, newFactory(conf, store, metrics)), store, metrics
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v))
}

func decodeJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
