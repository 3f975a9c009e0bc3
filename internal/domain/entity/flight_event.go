// internal/domain/entity/flight_event.go
package entity

import (
	"time"
)

// Event kinds
const (
	EventStatusChange = "status_change"
)

// FlightEvent is an immutable record of an observed status change for a trip.
// The most recent event for a trip defines its previous known status.
type FlightEvent struct {
	ID        string    `bson:"_id,omitempty"`
	TripID    string    `bson:"tripId"`
	Kind      string    `bson:"kind"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"createdAt"`
}
