// internal/domain/entity/trip.go
package entity

import (
	"time"
)

// Traveler is one recipient attached to a trip
type Traveler struct {
	ID             string `bson:"travelerId"`
	Name           string `bson:"name"`
	WhatsappNumber string `bson:"whatsappNumber"`
	IsCaptain      bool   `bson:"isCaptain"`
}

// Trip represents a booked travel record being watched by the poller
type Trip struct {
	ID           string     `bson:"_id,omitempty"`
	Title        string     `bson:"title"`
	FlightNumber string     `bson:"flightNumber"` // carrier code + number, e.g. "LA705"
	DepartureUTC time.Time  `bson:"departureUtc"`
	Origin       string     `bson:"origin"`
	Destination  string     `bson:"destination"`
	NextCheckAt  *time.Time `bson:"nextCheckAt,omitempty"` // nil until first check
	Travelers    []Traveler `bson:"travelers"`
	CreatedAt    time.Time  `bson:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt"`
}

// CarrierCode returns the airline prefix of the flight designator
func (t *Trip) CarrierCode() string {
	if len(t.FlightNumber) >= 2 {
		return t.FlightNumber[:2]
	}
	return t.FlightNumber
}
