package providers

import (
	"sync"
	"time"
)

// local mocks to avoid an import cycle with testutil

type testLogger struct {
	mu    sync.Mutex
	warns []string
	debug []string
}

func (m *testLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *testLogger) Warnf(_ TypeEnum, format string, _ ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, format)
}
func (m *testLogger) Debugf(_ TypeEnum, format string, _ ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debug = append(m.debug, format)
}
func (m *testLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *testLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *testLogger) Close()                                        {}

func (m *testLogger) warnCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.warns)
}

func (m *testLogger) debugCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.debug)
}

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
	transitions     map[string]int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                    { m.hits++ }
func (m *mockMetrics) IncCacheMisses()                                  { m.misses++ }
func (m *mockMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *mockMetrics) IncSeriesGenerated(_ string)                      {}
func (m *mockMetrics) IncConsentTransitions(status string) {
	if m.transitions == nil {
		m.transitions = make(map[string]int)
	}
	m.transitions[status]++
}
func (m *mockMetrics) IncLocationsReceived(_ string) {}
