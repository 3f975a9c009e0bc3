package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// WhatsappRepository defines the interface for the WhatsApp gateway
type WhatsappRepository interface {
	// SendPayload delivers one payload and returns the gateway task id
	SendPayload(ctx context.Context, payload *entity.Payload) (string, error)
}
