// internal/domain/entity/flight_record.go
package entity

import (
	"time"
)

// FlightRecord is the provider's view of a flight at fetch time
type FlightRecord struct {
	Ident        string
	Status       string
	ScheduledOut time.Time
	EstimatedOut time.Time
	Origin       string
	Destination  string
}
