package geo

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"

	"kgsite/internal/storage"
)

// Notifier receives every consent write. *events.Bus satisfies it.
type Notifier interface {
	Publish(channel string, payload any)
}

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*Service)

func WithLocator(l Locator) Option { return func(s *Service) { s.locator = l } }

// WithSecureContext sets the probe deciding whether location may be
// requested at all (TLS or localhost in a browser).
func WithSecureContext(probe func() bool) Option { return func(s *Service) { s.secure = probe } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithNotifier(n Notifier) Option { return func(s *Service) { s.notifier = n } }

func WithHTTPClient(c Doer) Option { return func(s *Service) { s.client = c } }

func WithObserver(fn func(Result)) Option { return func(s *Service) { s.observe = fn } }

// WithSendGroup makes the service track endpoint notifications on wg, so
// several services can be drained together.
func WithSendGroup(wg *sync.WaitGroup) Option { return func(s *Service) { s.sends = wg } }

// WithInFlightCounter shares the count of outstanding location queries, so
// a service built for a status read sees queries started by another one.
func WithInFlightCounter(c *atomic.Int32) Option {
	return func(s *Service) {
		if c != nil {
			s.inflight = c
		}
	}
}

// Service owns one consent record per storage key.
type Service struct {
	mu       sync.RWMutex
	config   Config
	store    storage.Store
	locator  Locator
	secure   func() bool
	now      func() time.Time
	notifier Notifier
	client   Doer
	observe  func(Result)

	inflight *atomic.Int32
	sends    *sync.WaitGroup
}

func NewService(store storage.Store, opts ...Option) *Service {
	s := &Service{
		config:   DefaultConfig(),
		store:    store,
		secure:   func() bool { return true },
		now:      time.Now,
		client:   http.DefaultClient,
		observe:  func(Result) {},
		sends:    &sync.WaitGroup{},
		inflight: &atomic.Int32{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init replaces the whole configuration.
func (s *Service) Init(c Config) {
	c = sanitizeConfig(c)
	s.mu.Lock()
	s.config = c
	s.mu.Unlock()
}

func (s *Service) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Service) storageKey() string {
	return s.Config().StorageKey
}

// GetStoredPayload returns the raw persisted payload, or nil when nothing
// usable is stored.
func (s *Service) GetStoredPayload() *Payload {
	raw, err := s.store.Get(s.storageKey())
	if err != nil || raw == "" {
		return nil
	}
	var p *Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}
	return p
}

func (s *Service) GetStored() Record {
	return Decode(s.GetStoredPayload())
}

func (s *Service) GetStatus() StatusResult {
	p := s.GetStoredPayload()
	return StatusResult{Status: StatusOf(p), Payload: p}
}

func (s *Service) ClearStored() {
	_ = s.store.Remove(s.storageKey())
	s.notify(nil)
}

// Save overwrites the stored record with p and notifies subscribers. It is
// the only write path.
func (s *Service) Save(p *Payload) *Payload {
	if data, err := json.Marshal(p); err == nil {
		_ = s.store.Set(s.storageKey(), string(data))
	}
	s.notify(p)
	return p
}

func (s *Service) SaveRecord(r Record) *Payload {
	return s.Save(r.Payload())
}

// Decline records that the user postponed the location prompt.
func (s *Service) Decline() *Payload {
	return s.SaveRecord(Declined{Timestamp: s.now()})
}

// InFlight reports whether a location query is outstanding for this
// service's counter.
func (s *Service) InFlight() bool {
	return s.inflight.Load() > 0
}

// Wait blocks until every endpoint notification has finished.
func (s *Service) Wait() {
	s.sends.Wait()
}

// Request asks the locator for the current position and records the
// outcome. It never returns before the stored record is written, and never
// waits for the endpoint notification.
func (s *Service) Request(ctx context.Context) Result {
	res := s.request(ctx)
	s.observe(res)
	return res
}

func (s *Service) request(ctx context.Context) Result {
	cfg := s.Config()
	if !cfg.Enabled {
		return Result{Status: StatusDisabled}
	}

	if !s.secure() {
		p := s.SaveRecord(Insecure{Timestamp: s.now()})
		return Result{Status: StatusInsecure, Payload: p}
	}

	if s.locator == nil {
		p := s.SaveRecord(Unsupported{Timestamp: s.now()})
		return Result{Status: StatusUnsupported, Payload: p}
	}

	opts := PositionOptions{
		EnableHighAccuracy: false,
		Timeout:            cfg.RequestTimeout,
		MaximumAge:         cfg.MaximumAge,
	}

	qctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	s.inflight.Add(1)
	pos, err := s.locator.CurrentPosition(qctx, opts)
	s.inflight.Add(-1)
	cancel()

	if err != nil {
		perr := asPositionError(err)
		if perr.Code == PermissionDenied {
			p := s.SaveRecord(Denied{Code: perr.Code, Message: perr.Message, Timestamp: s.now()})
			return Result{Status: StatusDenied, Payload: p}
		}
		p := s.SaveRecord(Failed{Code: perr.Code, Message: perr.Message, Timestamp: s.now()})
		return Result{Status: StatusError, Payload: p}
	}

	p := s.SaveRecord(Stored{
		Lat:       pos.Latitude,
		Lon:       pos.Longitude,
		Accuracy:  ptr(pos.Accuracy),
		Timestamp: s.now(),
	})
	s.sendToEndpoint(cfg, p)
	return Result{Status: StatusStored, Payload: p}
}

func (s *Service) notify(p *Payload) {
	if s.notifier == nil {
		return
	}
	if p == nil {
		s.notifier.Publish(EventUpdate, nil)
		return
	}
	s.notifier.Publish(EventUpdate, p)
}
