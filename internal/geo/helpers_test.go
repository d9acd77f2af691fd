package geo

import (
	"sync"
	"sync/atomic"
	"time"

	"kgsite/internal/storage"
)

var fixedNow = time.Date(2026, time.March, 10, 12, 30, 15, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// countingStore wraps a memory store and counts every access.
type countingStore struct {
	*storage.MemoryStore
	calls atomic.Int32
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: storage.NewMemoryStore()}
}

func (c *countingStore) Get(key string) (string, error) {
	c.calls.Add(1)
	return c.MemoryStore.Get(key)
}

func (c *countingStore) Set(key, value string) error {
	c.calls.Add(1)
	return c.MemoryStore.Set(key, value)
}

func (c *countingStore) Remove(key string) error {
	c.calls.Add(1)
	return c.MemoryStore.Remove(key)
}

type recordingNotifier struct {
	mu       sync.Mutex
	channels []string
	payloads []any
}

func (r *recordingNotifier) Publish(channel string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels = append(r.channels, channel)
	r.payloads = append(r.payloads, payload)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

func (r *recordingNotifier) last() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.payloads) == 0 {
		return nil
	}
	return r.payloads[len(r.payloads)-1]
}

func enabledConfig() Config {
	return Config{Enabled: true, StorageKey: DefaultStorageKey}
}
