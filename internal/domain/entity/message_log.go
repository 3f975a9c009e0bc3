// internal/domain/entity/message_log.go
package entity

import (
	"time"
)

// Message template categories
const (
	TemplateConfirmation = "confirmation"
	TemplateStatusChange = "status_change"
)

// Delivery statuses
const (
	DeliveryQueued = "queued"
	DeliveryFailed = "failed"
)

// MessageLogEntry records one outbound notification attempt, one per recipient
type MessageLogEntry struct {
	ID         string    `bson:"_id,omitempty"`
	TripID     string    `bson:"tripId"`
	TravelerID string    `bson:"travelerId"`
	Template   string    `bson:"template"`
	Status     string    `bson:"status"`
	TaskID     string    `bson:"taskId,omitempty"` // gateway-assigned id, empty on failure
	CreatedAt  time.Time `bson:"createdAt"`
}
