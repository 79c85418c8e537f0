package config

import "testing"

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != "8095" {
		t.Errorf("expected default port 8095, got %s", cfg.Server.Port)
	}
	if cfg.Database.Name != "estate_db" {
		t.Errorf("expected default database estate_db, got %s", cfg.Database.Name)
	}
	if cfg.Redis.Enabled {
		t.Error("expected Redis to be disabled by default")
	}
	if cfg.NATS.Enabled {
		t.Error("expected NATS to be disabled by default")
	}
	if cfg.Dashboard.CacheTTLSeconds != 30 {
		t.Errorf("expected dashboard cache TTL 30, got %d", cfg.Dashboard.CacheTTLSeconds)
	}
	if cfg.Dashboard.RecentLimit != 5 {
		t.Errorf("expected recent limit 5, got %d", cfg.Dashboard.RecentLimit)
	}
	if cfg.Sweep.Schedule != "5 0 * * *" {
		t.Errorf("expected default sweep schedule, got %s", cfg.Sweep.Schedule)
	}
	if cfg.Contacts.TimeoutSeconds != 5 {
		t.Errorf("expected contacts timeout 5, got %d", cfg.Contacts.TimeoutSeconds)
	}
}

func TestNew_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("DASHBOARD_EXPIRY_WINDOW_DAYS", "14")
	t.Setenv("AGREEMENT_SWEEP_SCHEDULE", "0 1 * * *")

	cfg := New()

	if cfg.Server.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Server.Port)
	}
	if !cfg.Redis.Enabled {
		t.Error("expected Redis to be enabled")
	}
	if cfg.Dashboard.ExpiryWindow != 14 {
		t.Errorf("expected expiry window 14, got %d", cfg.Dashboard.ExpiryWindow)
	}
	if cfg.Sweep.Schedule != "0 1 * * *" {
		t.Errorf("expected overridden schedule, got %s", cfg.Sweep.Schedule)
	}
}

func TestNew_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DASHBOARD_RECENT_LIMIT", "not-a-number")
	t.Setenv("REDIS_ENABLED", "not-a-bool")

	cfg := New()

	if cfg.Dashboard.RecentLimit != 5 {
		t.Errorf("expected fallback recent limit 5, got %d", cfg.Dashboard.RecentLimit)
	}
	if cfg.Redis.Enabled {
		t.Error("expected fallback Redis disabled")
	}
}
