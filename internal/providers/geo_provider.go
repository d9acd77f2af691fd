package providers

import (
	"kgsite/internal/events"
	"kgsite/internal/geo"
	"kgsite/internal/storage"
	"kgsite/internal/structures"
	"net/http"
	"sync"
	"sync/atomic"
)

// ConsentFactory builds consent services that share storage, the event
// bus and the outbound client, one storage key per profile.
type ConsentFactory struct {
	base    geo.Config
	store   storage.Store
	bus     *events.Bus
	client  *http.Client
	metrics MetricsProviderInterface

	sends sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]*atomic.Int32
}

func GeoConfigFrom(conf *structures.Config) geo.Config {
	g := conf.Geo
	return geo.Config{
		StorageKey:     g.StorageKey,
		Endpoint:       g.Endpoint,
		Enabled:        g.Enabled,
		RequestTimeout: g.RequestTimeout,
		MaximumAge:     g.MaximumAge,
		FetchTimeout:   g.FetchTimeout,
	}
}

func NewConsentFactory(conf *structures.Config, store storage.Store, bus *events.Bus, client *http.Client, metrics MetricsProviderInterface) *ConsentFactory {
	return &ConsentFactory{
		base:     GeoConfigFrom(conf),
		store:    store,
		bus:      bus,
		client:   client,
		metrics:  metrics,
		inflight: make(map[string]*atomic.Int32),
	}
}

func (f *ConsentFactory) StorageKey(profile string) string {
	key := f.base.StorageKey
	if key == "" {
		key = geo.DefaultStorageKey
	}
	if profile == "" {
		return key
	}
	return key + ":" + profile
}

// For returns a service bound to profile's record. opts come last so
// callers can supply the locator and secure-context probe per request.
func (f *ConsentFactory) For(profile string, opts ...geo.Option) *geo.Service {
	key := f.StorageKey(profile)
	base := []geo.Option{
		geo.WithNotifier(f.bus),
		geo.WithHTTPClient(f.client),
		geo.WithObserver(func(r geo.Result) { f.metrics.IncConsentTransitions(string(r.Status)) }),
		geo.WithSendGroup(&f.sends),
		geo.WithInFlightCounter(f.counter(key)),
	}
	svc := geo.NewService(f.store, append(base, opts...)...)
	cfg := f.base
	cfg.StorageKey = key
	svc.Init(cfg)
	return svc
}

func (f *ConsentFactory) counter(key string) *atomic.Int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.inflight[key]
	if !ok {
		c = &atomic.Int32{}
		f.inflight[key] = c
	}
	return c
}

// Wait blocks until background notifications of every built service end.
func (f *ConsentFactory) Wait() {
	f.sends.Wait()
}
