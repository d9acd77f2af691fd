package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgsite/internal/storage"
	"kgsite/internal/testutil"
)

func newIntake(store storage.Store) (*IntakeController, *testutil.MockMetrics) {
	metrics := testutil.NewMockMetrics()
	ic := NewIntakeController(&testutil.MockLogger{}, store, metrics)
	ic.now = func() time.Time { return time.UnixMilli(1773145815000) }
	return ic, metrics
}

func postIntake(ic *IntakeController, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	ic.Receive(rr, httptest.NewRequest(http.MethodPost, "/api/geo", strings.NewReader(body)))
	return rr
}

func TestIntake_Accepted(t *testing.T) {
	store := storage.NewMemoryStore()
	ic, metrics := newIntake(store)

	rr := postIntake(ic, `{"lat":40.4168,"lon":-3.7038,"accuracy":12.5,"timestamp":1773145800000}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp intakeResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, resp.ID, 36)

	raw, err := store.Get(IntakeKeyPrefix + resp.ID)
	require.NoError(t, err)
	var loc IntakeLocation
	require.NoError(t, json.Unmarshal([]byte(raw), &loc))
	assert.Equal(t, IntakeLocation{
		ID:         resp.ID,
		Lat:        40.4168,
		Lon:        -3.7038,
		Accuracy:   12.5,
		Timestamp:  1773145800000,
		ReceivedAt: 1773145815000,
	}, loc)
	assert.Equal(t, 1, metrics.LocationsReceived["accepted"])
}

func TestIntake_AcceptsConsentPayload(t *testing.T) {
	ic, _ := newIntake(storage.NewMemoryStore())

	rr := postIntake(ic, `{"lat":0,"lon":0}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestIntake_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `lat=1`},
		{"empty", ``},
		{"missing lon", `{"lat":1}`},
		{"missing lat", `{"lon":1}`},
		{"lat out of range", `{"lat":91,"lon":0}`},
		{"lon out of range", `{"lat":0,"lon":-180.5}`},
		{"negative accuracy", `{"lat":0,"lon":0,"accuracy":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			ic, metrics := newIntake(store)

			rr := postIntake(ic, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var resp statusMessage
			decodeBody(t, rr, &resp)
			assert.Equal(t, "error", resp.Status)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, 0, store.Len())
			assert.Equal(t, 1, metrics.LocationsReceived["invalid"])
		})
	}
}

func TestIntake_StoreUnavailable(t *testing.T) {
	ic, metrics := newIntake(testutil.FailingStore{})

	rr := postIntake(ic, `{"lat":1,"lon":2}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, 1, metrics.LocationsReceived["error"])
}
