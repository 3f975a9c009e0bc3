package usecase

import (
	"context"
	"fmt"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/utils"
)

// NotifyResult is the outcome of one traveler's delivery attempt
type NotifyResult struct {
	TravelerID string
	TaskID     string
	Err        error
}

// Notifier dispatches a rendered message to every traveler on a trip
type Notifier interface {
	Notify(ctx context.Context, trip *entity.Trip, template string, status string) []NotifyResult
}

// TripNotifier renders notification text and delivers it over the WhatsApp
// gateway, logging every attempt. Delivery is per traveler: one traveler's
// failure never blocks the others.
type TripNotifier struct {
	whatsappRepo repository.WhatsappRepository
	messageLog   repository.MessageLogRepository
	airlineRepo  repository.AirlineRepository
	timezoneRepo repository.TimezoneRepository
	logger       logger.Logger
}

// NewTripNotifier creates a new trip notifier
func NewTripNotifier(
	whatsappRepo repository.WhatsappRepository,
	messageLog repository.MessageLogRepository,
	airlineRepo repository.AirlineRepository,
	timezoneRepo repository.TimezoneRepository,
	logger logger.Logger,
) *TripNotifier {
	return &TripNotifier{
		whatsappRepo: whatsappRepo,
		messageLog:   messageLog,
		airlineRepo:  airlineRepo,
		timezoneRepo: timezoneRepo,
		logger:       logger,
	}
}

// Notify sends the given template to every traveler on the trip and records
// one MessageLogEntry per attempt.
func (n *TripNotifier) Notify(ctx context.Context, trip *entity.Trip, template string, status string) []NotifyResult {
	results := make([]NotifyResult, 0, len(trip.Travelers))

	for _, traveler := range trip.Travelers {
		text := n.renderMessage(ctx, trip, traveler, template, status)

		payload := &entity.Payload{
			Type:       payloadType(template),
			Phone:      utils.FormatWhatsappNumber(traveler.WhatsappNumber),
			Text:       text,
			ScheduleAt: time.Now().UTC(),
			CreatedAt:  time.Now().UTC(),
			Status:     "pending",
		}

		taskID, err := n.whatsappRepo.SendPayload(ctx, payload)

		entry := &entity.MessageLogEntry{
			TripID:     trip.ID,
			TravelerID: traveler.ID,
			Template:   template,
			Status:     entity.DeliveryQueued,
			TaskID:     taskID,
			CreatedAt:  time.Now().UTC(),
		}
		if err != nil {
			n.logger.Error("Failed to send notification",
				"tripId", trip.ID,
				"travelerId", traveler.ID,
				"error", err)
			entry.Status = entity.DeliveryFailed
			entry.TaskID = ""
		}

		if logErr := n.messageLog.Insert(ctx, entry); logErr != nil {
			n.logger.Error("Failed to insert message log entry",
				"tripId", trip.ID,
				"travelerId", traveler.ID,
				"error", logErr)
		}

		results = append(results, NotifyResult{TravelerID: traveler.ID, TaskID: taskID, Err: err})
	}

	return results
}

// renderMessage builds the message text for one traveler. Airline and
// timezone lookups are best effort: a missing reference row falls back to
// the raw designator and UTC rather than failing the send.
func (n *TripNotifier) renderMessage(ctx context.Context, trip *entity.Trip, traveler entity.Traveler, template string, status string) string {
	name := traveler.Name
	if name == "" {
		name = "traveler"
	}

	flightLabel := trip.FlightNumber
	if airline, err := n.airlineRepo.GetByCode(ctx, trip.CarrierCode()); err == nil {
		flightLabel = fmt.Sprintf("%s %s", airline.Name, trip.FlightNumber)
	}

	departure := trip.DepartureUTC.Format(utils.MessageDateLayout) + " UTC"
	if tz, err := n.timezoneRepo.GetByAirportCode(ctx, trip.Origin); err == nil {
		if loc, locErr := time.LoadLocation(tz.TzName); locErr == nil {
			departure = fmt.Sprintf("%s (%s)",
				trip.DepartureUTC.In(loc).Format(utils.MessageDateLayout), tz.CityName)
		}
	}

	switch template {
	case entity.TemplateStatusChange:
		return fmt.Sprintf(utils.StatusChangeTemplate, name, trip.Title, flightLabel, status, departure)
	default:
		return fmt.Sprintf(utils.ConfirmationTemplate, name, trip.Title, flightLabel, departure)
	}
}

func payloadType(template string) entity.PayloadType {
	if template == entity.TemplateStatusChange {
		return entity.FlightStatusUpdate
	}
	return entity.TripConfirmation
}
