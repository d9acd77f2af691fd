package providers

import (
	"kgsite/internal/structures"
	"testing"

	"github.com/stretchr/testify/assert"
)

type cacheMetricsTestInner struct {
	data map[string][]byte
}

func (c *cacheMetricsTestInner) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *cacheMetricsTestInner) Set(key string, value []byte) {
	c.data[key] = value
}

func TestMetricsCacheProvider_Hit(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"series:1": []byte("val1")}}
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	val, ok := cache.Get("series:1")
	assert.True(t, ok)
	assert.Equal(t, []byte("val1"), val)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 0, metrics.misses)
}

func TestMetricsCacheProvider_Miss(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	metrics := &mockMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	val, ok := cache.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Equal(t, 0, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestMetricsCacheProvider_SetDelegates(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	cache := &MetricsCacheProvider{inner: inner, metrics: &mockMetrics{}}

	cache.Set("charts:2", []byte("val2"))

	val, ok := inner.Get("charts:2")
	assert.True(t, ok)
	assert.Equal(t, []byte("val2"), val)
}

func TestNewInstrumentedCacheProvider_DisabledSkipsWrapper(t *testing.T) {
	conf := &structures.Config{Cache: structures.CacheConfig{Enabled: false}}
	metrics := &mockMetrics{}

	c := NewInstrumentedCacheProvider(conf, &testLogger{}, metrics)
	assert.IsType(t, &disabledCache{}, c)

	c.Get("any")
	assert.Equal(t, 0, metrics.misses)
}

func TestNewInstrumentedCacheProvider_EnabledCounts(t *testing.T) {
	conf := &structures.Config{Cache: structures.CacheConfig{Enabled: true, Size: 1}}
	metrics := &mockMetrics{}

	c := NewInstrumentedCacheProvider(conf, &testLogger{}, metrics)
	assert.IsType(t, &MetricsCacheProvider{}, c)

	c.Get("a") // miss
	c.Set("a", []byte("1"))
	c.Get("a") // hit

	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}
