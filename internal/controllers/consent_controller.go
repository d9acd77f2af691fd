package controllers

import (
	"context"
	"errors"
	json "github.com/goccy/go-json"
	"io"
	"kgsite/internal/geo"
	"kgsite/internal/providers"
	"net"
	"net/http"
	"strings"
	"time"
)

// ConsentController exposes the geolocation consent flow per profile. The
// browser reports what its geolocation API returned and the service owns
// the resulting record.
type ConsentController struct {
	logger   providers.Logger
	factory  *providers.ConsentFactory
	location *time.Location
}

type consentResponse struct {
	Status  geo.Status   `json:"status"`
	Payload *geo.Payload `json:"payload"`
	View    geo.View     `json:"view"`
}

// consentReport is what the browser observed. Coordinates mean success, an
// error code means failure, neither means the API is unavailable.
type consentReport struct {
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
	Accuracy     float64  `json:"accuracy"`
	ErrorCode    int      `json:"errorCode"`
	ErrorMessage string   `json:"errorMessage"`
}

func NewConsentController(logger providers.Logger, factory *providers.ConsentFactory) *ConsentController {
	return &ConsentController{
		logger:   logger,
		factory:  factory,
		location: time.Local,
	}
}

func (cc *ConsentController) GetStatus(w http.ResponseWriter, r *http.Request) {
	svc := cc.factory.For(profileOf(r))
	st := svc.GetStatus()
	view := geo.ResolveView(st.Payload, "", cc.location)
	if svc.InFlight() {
		view = geo.RequestingView(svc.Config().RequestTimeout)
	}
	writeJSON(w, http.StatusOK, consentResponse{
		Status:  st.Status,
		Payload: st.Payload,
		View:    view,
	})
}

func (cc *ConsentController) Request(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var report consentReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	opts := []geo.Option{geo.WithSecureContext(func() bool { return isSecureRequest(r) })}
	if loc, ok := report.locator(); ok {
		opts = append(opts, geo.WithLocator(loc))
	}

	// A client hanging up must not turn the outcome into a failed record.
	profile := profileOf(r)
	res := cc.factory.For(profile, opts...).Request(context.WithoutCancel(r.Context()))
	cc.logger.Infof(providers.TypeGeo, "Consent request for profile %q: %s", profile, res.Status)

	writeJSON(w, http.StatusOK, consentResponse{
		Status:  res.Status,
		Payload: res.Payload,
		View:    geo.ResolveView(res.Payload, res.Status, cc.location),
	})
}

func (cc *ConsentController) Decline(w http.ResponseWriter, r *http.Request) {
	p := cc.factory.For(profileOf(r)).Decline()
	writeJSON(w, http.StatusOK, consentResponse{
		Status:  geo.StatusDeclined,
		Payload: p,
		View:    geo.ResolveView(p, geo.StatusDeclined, cc.location),
	})
}

func (cc *ConsentController) Clear(w http.ResponseWriter, r *http.Request) {
	cc.factory.For(profileOf(r)).ClearStored()
	writeJSON(w, http.StatusOK, consentResponse{
		Status: geo.StatusEmpty,
		View:   geo.ResolveView(nil, "", cc.location),
	})
}

func (rep consentReport) locator() (geo.Locator, bool) {
	switch {
	case rep.ErrorCode != 0:
		return geo.StaticLocator{Err: &geo.PositionError{Code: rep.ErrorCode, Message: rep.ErrorMessage}}, true
	case rep.Lat != nil && rep.Lon != nil:
		return geo.StaticLocator{Position: geo.Position{
			Latitude:  *rep.Lat,
			Longitude: *rep.Lon,
			Accuracy:  rep.Accuracy,
		}}, true
	}
	return nil, false
}

func profileOf(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("profile"))
}

// isSecureRequest mirrors the browser rule: https, or plain http to a
// loopback host.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		return true
	}
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(strings.ToLower(host), "[]")
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
