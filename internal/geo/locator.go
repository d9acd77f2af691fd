package geo

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	PermissionDenied    = 1
	PositionUnavailable = 2
	PositionTimeout     = 3
)

type PositionOptions struct {
	EnableHighAccuracy bool
	Timeout            time.Duration
	MaximumAge         time.Duration
}

type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

type PositionError struct {
	Code    int
	Message string
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("geolocation error %d: %s", e.Code, e.Message)
}

// Locator is the device location capability. A Service without one
// reports the capability as unsupported.
type Locator interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error)
}

type LocatorFunc func(ctx context.Context, opts PositionOptions) (Position, error)

func (f LocatorFunc) CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error) {
	return f(ctx, opts)
}

// StaticLocator answers every query with the same position or error.
type StaticLocator struct {
	Position Position
	Err      error
}

func (s StaticLocator) CurrentPosition(ctx context.Context, _ PositionOptions) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	if s.Err != nil {
		return Position{}, s.Err
	}
	return s.Position, nil
}

func asPositionError(err error) *PositionError {
	var perr *PositionError
	if errors.As(err, &perr) {
		return perr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &PositionError{Code: PositionTimeout, Message: "Timeout expired"}
	}
	return &PositionError{Code: PositionUnavailable, Message: err.Error()}
}
