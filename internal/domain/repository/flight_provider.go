package repository

import (
	"context"
	"errors"
	"time"

	"tripwatch-service/internal/domain/entity"
)

// ErrFlightNotFound is returned when the provider has no flight matching
// the designator inside the requested window.
var ErrFlightNotFound = errors.New("flight not found")

// TimeRange bounds a provider lookup around the scheduled departure
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range (inclusive bounds)
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// FlightProvider defines the interface for the external flight-data API
type FlightProvider interface {
	FetchStatus(ctx context.Context, designator string, window TimeRange) (*entity.FlightRecord, error)
}
