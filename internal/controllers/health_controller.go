package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"kgsite/internal/events"
	"kgsite/internal/geo"
	"kgsite/internal/providers"
	"kgsite/internal/storage"
	"net/http"
	"time"
)

type HealthController struct {
	store     storage.Store
	bus       *events.Bus
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Service       string  `json:"service"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	StoredKeys    int     `json:"stored_keys"`
	// ConsentListeners counts live subscribers to consent updates.
	ConsentListeners int `json:"consent_listeners"`
}

type serviceStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Service:       providers.AppName,
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		StoredKeys:    hc.store.Len(),

		ConsentListeners: hc.bus.Subscribers(geo.EventUpdate),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// ApiHealth is the public liveness probe used by the site's frontend.
func (hc *HealthController) ApiHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, serviceStatus{Status: "ok", Service: providers.AppName})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store storage.Store, bus *events.Bus) *HealthController {
	return &HealthController{
		store:     store,
		bus:       bus,
		startTime: time.Now(),
	}
}
