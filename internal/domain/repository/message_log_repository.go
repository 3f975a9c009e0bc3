package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// MessageLogRepository defines the interface for outbound delivery bookkeeping
type MessageLogRepository interface {
	Insert(ctx context.Context, entry *entity.MessageLogEntry) error
}
