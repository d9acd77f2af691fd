package controllers

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgsite/internal/geo"
)

type consentFixture struct {
	cc *ConsentController
}

func (f consentFixture) do(handler http.HandlerFunc, method, target, host, body string) (*httptest.ResponseRecorder, consentResponse) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if host != "" {
		req.Host = host
	}
	rr := httptest.NewRecorder()
	handler(rr, req)

	var resp consentResponse
	if rr.Code == http.StatusOK {
		_ = decodeJSON(rr.Body.Bytes(), &resp)
	}
	return rr, resp
}

func TestConsent_GetStatusEmpty(t *testing.T) {
	cc, _, _ := newConsentController(testConfig())
	rr, resp := consentFixture{cc}.do(cc.GetStatus, http.MethodGet, "/api/consent?profile=alice", "", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, geo.StatusEmpty, resp.Status)
	assert.Nil(t, resp.Payload)
	assert.True(t, resp.View.ShowPrompt())
	assert.Contains(t, rr.Body.String(), `"payload":null`)
}

func TestConsent_RequestDisabled(t *testing.T) {
	conf := testConfig()
	conf.Geo.Enabled = false
	cc, store, _ := newConsentController(conf)

	_, resp := consentFixture{cc}.do(cc.Request, http.MethodPost, "/api/consent/request", "localhost", `{"lat":1,"lon":2}`)
	assert.Equal(t, geo.StatusDisabled, resp.Status)
	assert.Equal(t, geo.ViewDisabled, resp.View.State)
	assert.Equal(t, 0, store.Len())
}

func TestConsent_RequestInsecure(t *testing.T) {
	cc, _, _ := newConsentController(testConfig())
	f := consentFixture{cc}

	_, resp := f.do(cc.Request, http.MethodPost, "/api/consent/request?profile=alice", "kenetg.example", `{"lat":1,"lon":2}`)
	assert.Equal(t, geo.StatusInsecure, resp.Status)
	require.NotNil(t, resp.Payload)
	assert.True(t, resp.Payload.InsecureContext)
	assert.True(t, resp.Payload.Unsupported)

	_, status := f.do(cc.GetStatus, http.MethodGet, "/api/consent?profile=alice", "", "")
	assert.Equal(t, geo.StatusInsecure, status.Status)
}

func TestConsent_RequestStored(t *testing.T) {
	cc, _, metrics := newConsentController(testConfig())
	f := consentFixture{cc}

	_, resp := f.do(cc.Request, http.MethodPost, "/api/consent/request?profile=alice", "localhost:8080",
		`{"lat":40.4168,"lon":-3.7038,"accuracy":20}`)
	assert.Equal(t, geo.StatusStored, resp.Status)
	require.NotNil(t, resp.Payload)
	assert.Equal(t, 40.4168, *resp.Payload.Lat)
	assert.Equal(t, 20.0, *resp.Payload.Accuracy)
	assert.Equal(t, geo.ViewStored, resp.View.State)
	assert.Equal(t, 1, metrics.ConsentTransitions["stored"])

	_, status := f.do(cc.GetStatus, http.MethodGet, "/api/consent?profile=alice", "", "")
	assert.Equal(t, geo.StatusOK, status.Status)

	_, other := f.do(cc.GetStatus, http.MethodGet, "/api/consent?profile=bob", "", "")
	assert.Equal(t, geo.StatusEmpty, other.Status)
}

func TestConsent_RequestSurvivesClientCancel(t *testing.T) {
	cc, store, _ := newConsentController(testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/consent/request?profile=alice",
		strings.NewReader(`{"lat":40.4168,"lon":-3.7038,"accuracy":20}`)).WithContext(ctx)
	req.Host = "localhost:8080"
	rr := httptest.NewRecorder()
	cc.Request(rr, req)

	var resp consentResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, geo.StatusStored, resp.Status)

	raw, err := store.Get("kg_geo:alice")
	require.NoError(t, err)
	assert.Contains(t, raw, `"lat":40.4168`)
	assert.NotContains(t, raw, `"code"`)
}

func TestConsent_GetStatusWhileRequesting(t *testing.T) {
	cc, _, _ := newConsentController(testConfig())
	f := consentFixture{cc}

	entered := make(chan struct{})
	release := make(chan struct{})
	loc := geo.LocatorFunc(func(context.Context, geo.PositionOptions) (geo.Position, error) {
		close(entered)
		<-release
		return geo.Position{Latitude: 40.4168, Longitude: -3.7038, Accuracy: 20}, nil
	})
	done := make(chan geo.Result, 1)
	go func() { done <- cc.factory.For("alice", geo.WithLocator(loc)).Request(context.Background()) }()
	<-entered

	_, resp := f.do(cc.GetStatus, http.MethodGet, "/api/consent?profile=alice", "", "")
	assert.Equal(t, geo.StatusEmpty, resp.Status)
	assert.Equal(t, geo.ViewRequesting, resp.View.State)
	assert.Equal(t, "Calculando zona aproximada (max 8s)...", resp.View.Message)

	_, other := f.do(cc.GetStatus, http.MethodGet, "/api/consent?profile=bob", "", "")
	assert.NotEqual(t, geo.ViewRequesting, other.View.State)

	close(release)
	assert.Equal(t, geo.StatusStored, (<-done).Status)
	cc.factory.Wait()

	_, after := f.do(cc.GetStatus, http.MethodGet, "/api/consent?profile=alice", "", "")
	assert.Equal(t, geo.StatusOK, after.Status)
	assert.Equal(t, geo.ViewStored, after.View.State)
}

func TestConsent_RequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status geo.Status
	}{
		{"permission denied", `{"errorCode":1,"errorMessage":"User denied Geolocation"}`, geo.StatusDenied},
		{"position unavailable", `{"errorCode":2}`, geo.StatusError},
		{"timeout", `{"errorCode":3,"errorMessage":"Timeout expired"}`, geo.StatusError},
		{"no api", ``, geo.StatusUnsupported},
		{"half coordinates", `{"lat":1}`, geo.StatusUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc, _, _ := newConsentController(testConfig())
			rr, resp := consentFixture{cc}.do(cc.Request, http.MethodPost, "/api/consent/request", "127.0.0.1:8080", tt.body)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.status, resp.Status)
		})
	}
}

func TestConsent_RequestInvalidBody(t *testing.T) {
	cc, _, _ := newConsentController(testConfig())
	rr, _ := consentFixture{cc}.do(cc.Request, http.MethodPost, "/api/consent/request", "localhost", `{"lat":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"status":"error","message":"invalid body"}`, rr.Body.String())
}

func TestConsent_DeclineThenClear(t *testing.T) {
	cc, store, _ := newConsentController(testConfig())
	f := consentFixture{cc}

	_, resp := f.do(cc.Decline, http.MethodPost, "/api/consent/decline?profile=alice", "", "")
	assert.Equal(t, geo.StatusDeclined, resp.Status)
	require.NotNil(t, resp.Payload)
	assert.True(t, resp.Payload.Declined)
	assert.Equal(t, 1, store.Len())

	for i := 0; i < 2; i++ {
		rr, cleared := f.do(cc.Clear, http.MethodPost, "/api/consent/clear?profile=alice", "", "")
		assert.Equal(t, geo.StatusEmpty, cleared.Status)
		assert.Nil(t, cleared.Payload)
		assert.Contains(t, rr.Body.String(), `"payload":null`)
	}
	assert.Equal(t, 0, store.Len())
}

func TestIsSecureRequest(t *testing.T) {
	tests := []struct {
		name  string
		host  string
		proto string
		tls   bool
		want  bool
	}{
		{"plain http remote", "kenetg.example", "", false, false},
		{"tls", "kenetg.example", "", true, true},
		{"forwarded https", "kenetg.example", "HTTPS", false, true},
		{"forwarded http", "kenetg.example", "http", false, false},
		{"localhost", "localhost", "", false, true},
		{"localhost with port", "localhost:8080", "", false, true},
		{"dev subdomain", "app.localhost:3000", "", false, true},
		{"ipv4 loopback", "127.0.0.1:8080", "", false, true},
		{"ipv6 loopback", "[::1]:8080", "", false, true},
		{"private address", "192.168.1.10", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/consent/request", nil)
			req.Host = tt.host
			req.TLS = nil
			if tt.tls {
				req.TLS = &tls.ConnectionState{}
			}
			if tt.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			assert.Equal(t, tt.want, isSecureRequest(req))
		})
	}
}

func TestProfileOf_Trims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/consent?profile=%20alice%20", nil)
	assert.Equal(t, "alice", profileOf(req))
}
