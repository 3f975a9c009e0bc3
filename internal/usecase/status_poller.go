package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"

	"github.com/google/uuid"
)

// PollerOptions tunes the batch pass
type PollerOptions struct {
	// Workers bounds how many trip pipelines run concurrently against the provider
	Workers int
	// TripTimeout bounds one trip's fetch-compare-notify pipeline
	TripTimeout time.Duration
	// ProviderWindow is the half-window around departure passed to the provider
	ProviderWindow time.Duration
	// FallbackRetry is the delay applied after a failed provider fetch
	FallbackRetry time.Duration
	// NotifyFirstObservation controls whether the very first observed status
	// triggers a notification, or only transitions after it
	NotifyFirstObservation bool
}

func (o PollerOptions) withDefaults() PollerOptions {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.TripTimeout <= 0 {
		o.TripTimeout = 30 * time.Second
	}
	if o.ProviderWindow <= 0 {
		o.ProviderWindow = time.Hour
	}
	if o.FallbackRetry <= 0 {
		o.FallbackRetry = DefaultFallbackRetry
	}
	return o
}

// BatchResult summarizes one batch pass
type BatchResult struct {
	Skipped  bool `json:"skipped"`
	Due      int  `json:"due"`
	Checked  int  `json:"checked"`
	Notified int  `json:"notified"`
	Failed   int  `json:"failed"`
}

// StatusPoller is the adaptive status-polling scheduler. It selects due
// trips, fetches current flight status, detects changes, dispatches
// notifications and writes back the next check time.
type StatusPoller struct {
	tripRepo  repository.TripRepository
	eventRepo repository.FlightEventRepository
	provider  repository.FlightProvider
	notifier  Notifier
	logger    logger.Logger
	metrics   *metrics.Metrics
	opts      PollerOptions

	running atomic.Bool
}

// NewStatusPoller creates a new status poller
func NewStatusPoller(
	tripRepo repository.TripRepository,
	eventRepo repository.FlightEventRepository,
	provider repository.FlightProvider,
	notifier Notifier,
	logger logger.Logger,
	metrics *metrics.Metrics,
	opts PollerOptions,
) *StatusPoller {
	return &StatusPoller{
		tripRepo:  tripRepo,
		eventRepo: eventRepo,
		provider:  provider,
		notifier:  notifier,
		logger:    logger,
		metrics:   metrics,
		opts:      opts.withDefaults(),
	}
}

// RunDueChecks executes one batch pass. Overlapping invocations skip rather
// than run concurrently. The returned error covers only the due-trip
// selection; per-trip failures are absorbed and counted.
func (p *StatusPoller) RunDueChecks(ctx context.Context) (result *BatchResult, err error) {
	if !p.running.CompareAndSwap(false, true) {
		p.logger.Warn("Batch pass already running, skipping")
		return &BatchResult{Skipped: true}, nil
	}
	defer p.running.Store(false)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Panic in batch pass", "panic", r)
			p.metrics.ErrorsCount.WithLabelValues("batch_panic").Inc()
			result, err = nil, fmt.Errorf("batch pass panicked: %v", r)
		}
	}()

	log := p.logger.With("run", uuid.NewString()[:8])
	start := time.Now()
	now := start.UTC()

	due, err := p.selectDue(ctx, now)
	if err != nil {
		log.Error("Failed to select due trips", "error", err)
		p.metrics.ErrorsCount.WithLabelValues("select_due").Inc()
		return nil, fmt.Errorf("select due trips: %w", err)
	}

	result = &BatchResult{Due: len(due)}
	if len(due) == 0 {
		return result, nil
	}
	log.Info("Processing due trips", "count", len(due))

	var checked, notified, failed atomic.Int64
	sem := make(chan struct{}, p.opts.Workers)
	var wg sync.WaitGroup

	for _, trip := range due {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
		}
		// A closed context wins over a freed worker slot: stop launching
		// and let the in-flight pipelines drain below.
		if ctx.Err() != nil {
			log.Warn("Batch pass cancelled, draining in-flight trips")
			break
		}
		wg.Add(1)
		go func(t *entity.Trip) {
			defer wg.Done()
			defer func() { <-sem }()

			switch p.processTrip(ctx, log, t, now) {
			case tripNotified:
				checked.Add(1)
				notified.Add(1)
			case tripChecked:
				checked.Add(1)
			default:
				failed.Add(1)
			}
		}(trip)
	}
	wg.Wait()

	result.Checked = int(checked.Load())
	result.Notified = int(notified.Load())
	result.Failed = int(failed.Load())

	p.metrics.TripsChecked.Add(float64(result.Checked))
	p.metrics.BatchDuration.Observe(time.Since(start).Seconds())
	log.Info("Batch pass complete",
		"due", result.Due,
		"checked", result.Checked,
		"notified", result.Notified,
		"failed", result.Failed,
		"elapsed", time.Since(start).String())

	return result, nil
}

// selectDue unions never-checked trips with past-due trips, deduplicating by
// trip id. A trip read by both queries is processed once.
func (p *StatusPoller) selectDue(ctx context.Context, now time.Time) ([]*entity.Trip, error) {
	neverChecked, err := p.tripRepo.FindNeverChecked(ctx)
	if err != nil {
		return nil, err
	}
	pastDue, err := p.tripRepo.FindDueBefore(ctx, now)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(neverChecked)+len(pastDue))
	due := make([]*entity.Trip, 0, len(neverChecked)+len(pastDue))
	for _, t := range append(neverChecked, pastDue...) {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		due = append(due, t)
	}
	return due, nil
}

type tripOutcome int

const (
	tripFailed tripOutcome = iota
	tripChecked
	tripNotified
)

// processTrip runs the fetch-compare-notify-reschedule pipeline for one
// trip. It never panics outward and never blocks past the trip timeout;
// any failure leaves the trip with a short fallback reschedule.
func (p *StatusPoller) processTrip(ctx context.Context, log logger.Logger, trip *entity.Trip, now time.Time) (outcome tripOutcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic in trip pipeline", "tripId", trip.ID, "panic", r)
			p.metrics.ErrorsCount.WithLabelValues("trip_panic").Inc()
			outcome = tripFailed
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.opts.TripTimeout)
	defer cancel()

	window := repository.TimeRange{
		Start: trip.DepartureUTC.Add(-p.opts.ProviderWindow),
		End:   trip.DepartureUTC.Add(p.opts.ProviderWindow),
	}

	record, err := p.provider.FetchStatus(ctx, trip.FlightNumber, window)
	if err != nil {
		// NotFound and transient errors take the same path: a short fixed
		// retry, with the normal cadence resuming once a fetch succeeds.
		log.Warn("Provider fetch failed, scheduling fallback retry",
			"tripId", trip.ID,
			"flight", trip.FlightNumber,
			"error", err)
		p.metrics.ProviderErrors.Inc()
		p.reschedule(ctx, log, trip.ID, now.Add(p.opts.FallbackRetry))
		return tripFailed
	}

	previous, err := p.eventRepo.LatestByTripID(ctx, trip.ID)
	if err != nil {
		log.Error("Failed to read latest flight event", "tripId", trip.ID, "error", err)
		p.metrics.ErrorsCount.WithLabelValues("event_read").Inc()
		p.reschedule(ctx, log, trip.ID, now.Add(p.opts.FallbackRetry))
		return tripFailed
	}

	outcome = tripChecked
	changed := previous == nil || previous.Status != record.Status
	if changed {
		// First observations always get a baseline event so later
		// transitions are detectable; whether they also notify is policy.
		if previous != nil || p.opts.NotifyFirstObservation {
			p.notifier.Notify(ctx, trip, entity.TemplateStatusChange, record.Status)
			p.metrics.NotificationsSent.Inc()
			outcome = tripNotified
			log.Info("Status change notified",
				"tripId", trip.ID,
				"flight", trip.FlightNumber,
				"status", record.Status)
		}

		event := &entity.FlightEvent{
			TripID:    trip.ID,
			Kind:      entity.EventStatusChange,
			Status:    record.Status,
			CreatedAt: now,
		}
		if err := p.eventRepo.Append(ctx, event); err != nil {
			log.Error("Failed to append flight event", "tripId", trip.ID, "error", err)
			p.metrics.ErrorsCount.WithLabelValues("event_append").Inc()
		}
	}

	p.reschedule(ctx, log, trip.ID, ComputeNextCheck(trip.DepartureUTC, now))
	return outcome
}

func (p *StatusPoller) reschedule(ctx context.Context, log logger.Logger, tripID string, at time.Time) {
	// The write-back must survive a pipeline that already hit its deadline,
	// otherwise a timed-out trip would stay due forever.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := p.tripRepo.UpdateNextCheck(ctx, tripID, at); err != nil {
		// The trip stays due and is retried on the next tick.
		log.Error("Failed to write back next check time", "tripId", tripID, "error", err)
		p.metrics.ErrorsCount.WithLabelValues("reschedule").Inc()
	}
}
