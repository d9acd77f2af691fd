package testutil

import (
	"errors"
	"kgsite/internal/providers"
	"kgsite/internal/storage"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	data map[string][]byte
	Sets int
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.Sets++
}

// MockMetrics counts the domain metrics the handlers emit.
type MockMetrics struct {
	mu                 sync.Mutex
	Requests           map[string]int
	CacheHits          int
	CacheMisses        int
	Persisted          int
	SeriesGenerated    map[string]int
	ConsentTransitions map[string]int
	LocationsReceived  map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Requests:           make(map[string]int),
		SeriesGenerated:    make(map[string]int),
		ConsentTransitions: make(map[string]int),
		LocationsReceived:  make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[endpoint]++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persisted++
}
func (m *MockMetrics) IncSeriesGenerated(format string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SeriesGenerated[format]++
}
func (m *MockMetrics) IncConsentTransitions(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConsentTransitions[status]++
}
func (m *MockMetrics) IncLocationsReceived(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LocationsReceived[result]++
}

// MockCompressor implements interfaces.CompressorInterface with configurable failures.
type MockCompressor struct {
	CompressErr   error
	DecompressErr error
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressErr != nil {
		return nil, m.CompressErr
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressErr != nil {
		return nil, m.DecompressErr
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

var ErrUnavailable = errors.New("storage unavailable")

// FailingStore is a storage.Store whose every call fails.
type FailingStore struct{}

func (FailingStore) Get(string) (string, error) { return "", ErrUnavailable }
func (FailingStore) Set(string, string) error   { return ErrUnavailable }
func (FailingStore) Remove(string) error        { return ErrUnavailable }
func (FailingStore) Len() int                   { return 0 }

var _ storage.Store = FailingStore{}
