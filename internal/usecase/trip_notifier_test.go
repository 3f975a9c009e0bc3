package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/logger"

	"gorm.io/gorm"
)

type fakeWhatsappRepo struct {
	mu       sync.Mutex
	failFor  map[string]error
	payloads []*entity.Payload
}

func (f *fakeWhatsappRepo) SendPayload(ctx context.Context, payload *entity.Payload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	if err := f.failFor[payload.Phone]; err != nil {
		return "", err
	}
	return "task-42", nil
}

type fakeMessageLog struct {
	mu      sync.Mutex
	entries []*entity.MessageLogEntry
}

func (f *fakeMessageLog) Insert(ctx context.Context, entry *entity.MessageLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

type fakeAirlineRepo struct {
	name string
}

func (f *fakeAirlineRepo) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	if f.name == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &entity.Airline{Code: code, Name: f.name}, nil
}

type fakeTimezoneRepo struct {
	tz *entity.Timezone
}

func (f *fakeTimezoneRepo) GetByAirportCode(ctx context.Context, code string) (*entity.Timezone, error) {
	if f.tz == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.tz, nil
}

func notifierTrip() *entity.Trip {
	return &entity.Trip{
		ID:           "t1",
		Title:        "Patagonia getaway",
		FlightNumber: "LA705",
		Origin:       "EZE",
		DepartureUTC: time.Date(2026, 4, 2, 14, 30, 0, 0, time.UTC),
		Travelers: []entity.Traveler{
			{ID: "tr-1", Name: "Ana", WhatsappNumber: "+5491100000001"},
			{ID: "tr-2", Name: "Benito", WhatsappNumber: "+5491100000002"},
		},
	}
}

func TestNotifyPartialFailure(t *testing.T) {
	wa := &fakeWhatsappRepo{failFor: map[string]error{
		"whatsapp:+5491100000002": errors.New("gateway 500"),
	}}
	msgLog := &fakeMessageLog{}

	n := NewTripNotifier(wa, msgLog, &fakeAirlineRepo{}, &fakeTimezoneRepo{}, logger.NewNop())
	results := n.Notify(context.Background(), notifierTrip(), entity.TemplateStatusChange, "Delayed")

	if len(results) != 2 {
		t.Fatalf("expected 2 delivery attempts, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("first traveler should succeed: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Fatal("second traveler should fail")
	}

	if len(msgLog.entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(msgLog.entries))
	}
	if msgLog.entries[0].Status != entity.DeliveryQueued || msgLog.entries[0].TaskID != "task-42" {
		t.Fatalf("unexpected first entry %+v", msgLog.entries[0])
	}
	if msgLog.entries[1].Status != entity.DeliveryFailed || msgLog.entries[1].TaskID != "" {
		t.Fatalf("unexpected second entry %+v", msgLog.entries[1])
	}
}

func TestNotifyRendersWithReferenceData(t *testing.T) {
	wa := &fakeWhatsappRepo{}
	n := NewTripNotifier(wa, &fakeMessageLog{},
		&fakeAirlineRepo{name: "LATAM Airlines"},
		&fakeTimezoneRepo{tz: &entity.Timezone{AirportCode: "EZE", CityName: "Buenos Aires", TzName: "America/Argentina/Buenos_Aires"}},
		logger.NewNop())

	n.Notify(context.Background(), notifierTrip(), entity.TemplateStatusChange, "Delayed")

	if len(wa.payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(wa.payloads))
	}
	text := wa.payloads[0].Text
	for _, want := range []string{"Ana", "LATAM Airlines LA705", "Delayed", "Buenos Aires"} {
		if !strings.Contains(text, want) {
			t.Fatalf("message %q missing %q", text, want)
		}
	}
	// 14:30 UTC is 11:30 in Buenos Aires.
	if !strings.Contains(text, "11:30") {
		t.Fatalf("message %q should show local departure time", text)
	}
}

func TestNotifyFallsBackWithoutReferenceData(t *testing.T) {
	wa := &fakeWhatsappRepo{}
	n := NewTripNotifier(wa, &fakeMessageLog{}, &fakeAirlineRepo{}, &fakeTimezoneRepo{}, logger.NewNop())

	n.Notify(context.Background(), notifierTrip(), entity.TemplateConfirmation, "")

	if len(wa.payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(wa.payloads))
	}
	text := wa.payloads[0].Text
	if !strings.Contains(text, "LA705") || !strings.Contains(text, "UTC") {
		t.Fatalf("fallback message %q should carry raw designator and UTC time", text)
	}
}

func TestSendConfirmationCountsSuccesses(t *testing.T) {
	trip := notifierTrip()
	trips := &fakeTripRepo{pastDue: []*entity.Trip{trip}}
	wa := &fakeWhatsappRepo{failFor: map[string]error{
		"whatsapp:+5491100000002": errors.New("gateway 500"),
	}}
	n := NewTripNotifier(wa, &fakeMessageLog{}, &fakeAirlineRepo{}, &fakeTimezoneRepo{}, logger.NewNop())

	c := NewConfirmationSender(trips, n, logger.NewNop())
	sent, err := c.SendConfirmation(context.Background(), "t1")
	if err != nil {
		t.Fatalf("SendConfirmation: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 successful send, got %d", sent)
	}
}

func TestSendConfirmationUnknownTrip(t *testing.T) {
	c := NewConfirmationSender(&fakeTripRepo{}, &fakeNotifier{}, logger.NewNop())
	if _, err := c.SendConfirmation(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown trip")
	}
}
