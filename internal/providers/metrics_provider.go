package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"kgsite/internal/storage"
	"kgsite/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncSeriesGenerated(format string)
	IncConsentTransitions(status string)
	IncLocationsReceived(result string)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	seriesGenerated     *prometheus.CounterVec
	consentTransitions  *prometheus.CounterVec
	locationsReceived   *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncSeriesGenerated(format string) {
	m.seriesGenerated.WithLabelValues(format).Inc()
}

func (m *MetricsProvider) IncConsentTransitions(status string) {
	m.consentTransitions.WithLabelValues(status).Inc()
}

func (m *MetricsProvider) IncLocationsReceived(result string) {
	m.locationsReceived.WithLabelValues(result).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, store storage.Store) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kg_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kg_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kg_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kg_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kg_persistence_duration_seconds",
			Help:    "Duration of storage snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		seriesGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kg_analytics_series_generated_total",
			Help: "Mock analytics series generated, by format",
		}, []string{"format"}),

		consentTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kg_geo_consent_transitions_total",
			Help: "Geolocation consent requests resolved, by status",
		}, []string{"status"}),

		locationsReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kg_geo_locations_received_total",
			Help: "Location notifications received by the intake endpoint",
		}, []string{"result"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "kg_storage_keys",
		Help: "Number of keys held by the storage driver",
	}, func() float64 {
		return float64(store.Len())
	})

	return m
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncSeriesGenerated(_ string)                      {}
func (n *noopMetrics) IncConsentTransitions(_ string)                   {}
func (n *noopMetrics) IncLocationsReceived(_ string)                    {}

func NewNoopMetrics() MetricsProviderInterface {
	return &noopMetrics{}
}
