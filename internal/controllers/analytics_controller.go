package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"kgsite/internal/analytics"
	"kgsite/internal/providers"
	"kgsite/internal/structures"
	"net/http"
	"strconv"
	"time"
)

type AnalyticsController struct {
	logger  providers.Logger
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	seeds   *analytics.SeedStore
	conf    structures.AnalyticsConfig
	now     func() time.Time
}

type seedResponse struct {
	Profile string `json:"profile"`
	Seed    uint32 `json:"seed"`
}

type chartsResponse struct {
	Request analytics.Request              `json:"request"`
	Charts  map[string]analytics.ChartData `json:"charts"`
	Summary analytics.SummaryText          `json:"summary"`
}

func NewAnalyticsController(conf *structures.Config, logger providers.Logger, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface, seeds *analytics.SeedStore) *AnalyticsController {
	return &AnalyticsController{
		logger:  logger,
		cache:   cache,
		metrics: metrics,
		seeds:   seeds,
		conf:    conf.Analytics,
		now:     time.Now,
	}
}

// parseRequest reads seed|profile, range and format. A missing seed falls
// back to the profile's persisted seed.
func (ac *AnalyticsController) parseRequest(r *http.Request) (analytics.Request, error) {
	q := r.URL.Query()
	req := analytics.Request{
		RangeDays: ac.conf.DefaultRange,
		Format:    analytics.ParseFormat(q.Get("format")),
	}

	if raw := q.Get("range"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 || days > ac.conf.MaxRange {
			return req, fmt.Errorf("range must be between 1 and %d", ac.conf.MaxRange)
		}
		req.RangeDays = days
	}

	if raw := q.Get("seed"); raw != "" {
		seed, ok := analytics.ParseSeed(raw)
		if !ok {
			return req, fmt.Errorf("seed must be a finite number")
		}
		req.Seed = seed
		return req, nil
	}
	req.Seed = ac.seeds.Load(q.Get("profile"))
	return req, nil
}

// Series labels depend on the calendar day, so the day is part of the key.
func (ac *AnalyticsController) cacheKey(kind string, req analytics.Request, now time.Time) string {
	return fmt.Sprintf("%s:%d:%d:%s:%s", kind, req.Seed, req.RangeDays, req.Format, now.Format(time.DateOnly))
}

func (ac *AnalyticsController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeRaw(w, http.StatusOK, data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeRaw(w, http.StatusOK, gson)
}

func (ac *AnalyticsController) generate(req analytics.Request, now time.Time) *analytics.Series {
	series := analytics.Generate(req, now)
	ac.metrics.IncSeriesGenerated(string(req.Format))
	return series
}

func (ac *AnalyticsController) GetSeries(w http.ResponseWriter, r *http.Request) {
	req, err := ac.parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := ac.now()
	ac.serveFromCacheOrCompute(w, ac.cacheKey("series", req, now), func() (any, error) {
		return ac.generate(req, now), nil
	})
}

func (ac *AnalyticsController) GetCharts(w http.ResponseWriter, r *http.Request) {
	req, err := ac.parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := ac.now()
	ac.serveFromCacheOrCompute(w, ac.cacheKey("charts", req, now), func() (any, error) {
		series := ac.generate(req, now)
		return chartsResponse{
			Request: series.Request,
			Charts:  series.Charts(),
			Summary: series.Summary.Text(language.Spanish),
		}, nil
	})
}

// GetSeed returns the profile's seed, minting a profile id when the caller
// has none yet.
func (ac *AnalyticsController) GetSeed(w http.ResponseWriter, r *http.Request) {
	profile := ac.profile(r)
	writeJSON(w, http.StatusOK, seedResponse{Profile: profile, Seed: ac.seeds.Load(profile)})
}

func (ac *AnalyticsController) RegenerateSeed(w http.ResponseWriter, r *http.Request) {
	profile := ac.profile(r)
	seed := ac.seeds.Regenerate(profile)
	ac.logger.Debugf(providers.TypePost, "Seed regenerated for profile %s", profile)
	writeJSON(w, http.StatusOK, seedResponse{Profile: profile, Seed: seed})
}

func (ac *AnalyticsController) profile(r *http.Request) string {
	if p := r.URL.Query().Get("profile"); p != "" {
		return p
	}
	return uuid.NewString()
}
