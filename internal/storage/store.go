package storage

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("storage: key not found")

// Store is a string key-value store. Every call reports failure explicitly;
// callers decide what to fall back to.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
	Len() int
}

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

type UnknownDriverError struct {
	Driver string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("storage: unknown driver %q", e.Driver)
}
