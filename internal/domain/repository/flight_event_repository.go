package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// FlightEventRepository defines the interface for the append-only event log
type FlightEventRepository interface {
	Append(ctx context.Context, event *entity.FlightEvent) error
	// LatestByTripID returns the most recent event for a trip, or nil if none
	LatestByTripID(ctx context.Context, tripID string) (*entity.FlightEvent, error)
}
