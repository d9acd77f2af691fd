package geo

import (
	"strings"
	"time"
)

const (
	DefaultStorageKey     = "kg_geo"
	DefaultRequestTimeout = 8 * time.Second
	DefaultMaximumAge     = 10 * time.Minute
	DefaultFetchTimeout   = 3 * time.Second

	// EventUpdate is the bus channel carrying every consent write.
	EventUpdate = "kggeo:update"
)

type Config struct {
	StorageKey     string
	Endpoint       string
	Enabled        bool
	RequestTimeout time.Duration
	// MaximumAge is the oldest cached position the locator may return.
	// Zero means the default; negative means always query afresh.
	MaximumAge   time.Duration
	FetchTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		StorageKey:     DefaultStorageKey,
		RequestTimeout: DefaultRequestTimeout,
		MaximumAge:     DefaultMaximumAge,
		FetchTimeout:   DefaultFetchTimeout,
	}
}

func sanitizeConfig(c Config) Config {
	c.StorageKey = strings.TrimSpace(c.StorageKey)
	if c.StorageKey == "" {
		c.StorageKey = DefaultStorageKey
	}
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	switch {
	case c.MaximumAge == 0:
		c.MaximumAge = DefaultMaximumAge
	case c.MaximumAge < 0:
		c.MaximumAge = 0
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	return c
}
