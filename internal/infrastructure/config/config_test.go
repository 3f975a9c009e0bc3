package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.PollInterval != 5*time.Minute {
		t.Fatalf("expected default 5m poll interval, got %v", cfg.PollInterval)
	}
	if cfg.ProviderWindow != time.Hour {
		t.Fatalf("expected default 1h provider window, got %v", cfg.ProviderWindow)
	}
	if cfg.FallbackRetry != 5*time.Minute {
		t.Fatalf("expected default 5m fallback retry, got %v", cfg.FallbackRetry)
	}
	if !cfg.NotifyFirstObservation {
		t.Fatal("expected first-observation notifications on by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "2")
	t.Setenv("PROVIDER_WINDOW", "180")
	t.Setenv("NOTIFY_FIRST_OBSERVATION", "false")
	t.Setenv("POLL_WORKERS", "8")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.PollInterval != 2*time.Minute {
		t.Fatalf("expected 2m poll interval, got %v", cfg.PollInterval)
	}
	if cfg.ProviderWindow != 3*time.Hour {
		t.Fatalf("expected 3h provider window, got %v", cfg.ProviderWindow)
	}
	if cfg.NotifyFirstObservation {
		t.Fatal("expected first-observation notifications disabled")
	}
	if cfg.PollWorkers != 8 {
		t.Fatalf("expected 8 workers, got %d", cfg.PollWorkers)
	}
}
