package usecase

import (
	"time"
)

// Fallback delay applied when a provider fetch fails
const DefaultFallbackRetry = 5 * time.Minute

// ComputeNextCheck returns when a trip departing at departure should next be
// polled, given the current time. Check frequency tightens as departure
// approaches. Pure: no I/O, no hidden state.
func ComputeNextCheck(departure, now time.Time) time.Time {
	remaining := departure.Sub(now)

	switch {
	case remaining > 40*time.Hour:
		return departure.Add(-40 * time.Hour)
	case remaining > 12*time.Hour:
		return now.Add(10 * time.Hour)
	case remaining > 3*time.Hour:
		return now.Add(3 * time.Hour)
	case remaining > time.Hour:
		return now.Add(15 * time.Minute)
	default:
		return now.Add(5 * time.Minute)
	}
}
