package usecase

import (
	"context"
	"fmt"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
)

// ConfirmationSender handles the trip-created path: a booking confirmation
// message to every traveler on the trip.
type ConfirmationSender struct {
	tripRepo repository.TripRepository
	notifier Notifier
	logger   logger.Logger
}

// NewConfirmationSender creates a new confirmation sender
func NewConfirmationSender(tripRepo repository.TripRepository, notifier Notifier, logger logger.Logger) *ConfirmationSender {
	return &ConfirmationSender{
		tripRepo: tripRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// SendConfirmation sends the confirmation template to each traveler of the
// trip and returns the number of successful sends.
func (c *ConfirmationSender) SendConfirmation(ctx context.Context, tripID string) (int, error) {
	trip, err := c.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return 0, fmt.Errorf("load trip %s: %w", tripID, err)
	}
	if len(trip.Travelers) == 0 {
		c.logger.Warn("Trip has no travelers, nothing to confirm", "tripId", tripID)
		return 0, nil
	}

	sent := 0
	for _, res := range c.notifier.Notify(ctx, trip, entity.TemplateConfirmation, "") {
		if res.Err == nil {
			sent++
		}
	}
	c.logger.Info("Confirmation sent", "tripId", tripID, "sent", sent, "travelers", len(trip.Travelers))
	return sent, nil
}
