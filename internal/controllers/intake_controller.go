package controllers

import (
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gookit/validate"
	"kgsite/internal/providers"
	"kgsite/internal/storage"
	"net/http"
	"time"
)

const IntakeKeyPrefix = "kg_geo_intake:"

// IntakeController receives the location notifications the consent flow
// posts to its endpoint.
type IntakeController struct {
	logger  providers.Logger
	store   storage.Store
	metrics providers.MetricsProviderInterface
	now     func() time.Time
}

type intakeBody struct {
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Accuracy  *float64 `json:"accuracy"`
	Timestamp int64    `json:"timestamp"`
}

type IntakeLocation struct {
	ID         string  `json:"id"`
	Lat        float64 `json:"lat" validate:"min:-90|max:90"`
	Lon        float64 `json:"lon" validate:"min:-180|max:180"`
	Accuracy   float64 `json:"accuracy" validate:"min:0"`
	Timestamp  int64   `json:"timestamp" validate:"min:0"`
	ReceivedAt int64   `json:"receivedAt"`
}

type intakeResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

func NewIntakeController(logger providers.Logger, store storage.Store, metrics providers.MetricsProviderInterface) *IntakeController {
	return &IntakeController{
		logger:  logger,
		store:   store,
		metrics: metrics,
		now:     time.Now,
	}
}

func (ic *IntakeController) Receive(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var body intakeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		ic.reject(w, "invalid body")
		return
	}
	if body.Lat == nil || body.Lon == nil {
		ic.reject(w, "lat and lon are required")
		return
	}

	loc := IntakeLocation{
		ID:         uuid.NewString(),
		Lat:        *body.Lat,
		Lon:        *body.Lon,
		Timestamp:  body.Timestamp,
		ReceivedAt: ic.now().UnixMilli(),
	}
	if body.Accuracy != nil {
		loc.Accuracy = *body.Accuracy
	}

	v := validate.Struct(&loc)
	if !v.Validate() {
		ic.reject(w, v.Errors.One())
		return
	}

	gson, err := json.Marshal(loc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := ic.store.Set(IntakeKeyPrefix+loc.ID, string(gson)); err != nil {
		ic.logger.Errorf(providers.TypePost, "Intake store failed: %s", err)
		ic.metrics.IncLocationsReceived("error")
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	ic.metrics.IncLocationsReceived("accepted")
	ic.logger.Debugf(providers.TypePost, "Location %s received", loc.ID)
	writeJSON(w, http.StatusCreated, intakeResponse{Status: "ok", ID: loc.ID})
}

func (ic *IntakeController) reject(w http.ResponseWriter, message string) {
	ic.metrics.IncLocationsReceived("invalid")
	writeError(w, http.StatusBadRequest, message)
}
