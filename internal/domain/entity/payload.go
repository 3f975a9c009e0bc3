// internal/domain/entity/payload.go
package entity

import (
	"time"
)

// PayloadType defines the type of the payload
type PayloadType string

const (
	TripConfirmation   PayloadType = "trip_confirmation"
	FlightStatusUpdate PayloadType = "flight_status_update"
)

// Payload represents one message handed to the WhatsApp gateway
type Payload struct {
	ID         string      `json:"id,omitempty" bson:"_id,omitempty"`
	Type       PayloadType `json:"type" bson:"type"`
	Phone      string      `json:"phone" bson:"phone"`
	Text       string      `json:"text" bson:"text"`
	ScheduleAt time.Time   `json:"scheduleAt" bson:"scheduleAt"`
	CreatedAt  time.Time   `json:"createdAt" bson:"createdAt"`
	Status     string      `json:"status" bson:"status"`
}
