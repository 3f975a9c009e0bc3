package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
)

// TripRepository defines the interface for trip persistence
type TripRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Trip, error)
	// FindNeverChecked returns trips whose next check time was never set
	FindNeverChecked(ctx context.Context) ([]*entity.Trip, error)
	// FindDueBefore returns trips whose next check time is at or before t
	FindDueBefore(ctx context.Context, t time.Time) ([]*entity.Trip, error)
	UpdateNextCheck(ctx context.Context, id string, nextCheckAt time.Time) error
}
