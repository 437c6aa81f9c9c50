package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"PORT", "GOAL_ON_TRACK_TOLERANCE_CENTS", "BILL_HORIZON_DAYS", "SNAPSHOT_SCHEDULE", "METRICS_ENABLED", "REQUEST_TIMEOUT"} {
			t.Setenv(key, "")
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.GoalOnTrackTolerance != 1 {
			t.Errorf("expected tolerance 1, got %d", cfg.GoalOnTrackTolerance)
		}
		if cfg.BillHorizonDays != 30 {
			t.Errorf("expected horizon 30, got %d", cfg.BillHorizonDays)
		}
		if cfg.SnapshotSchedule != "@daily" {
			t.Errorf("expected @daily, got %s", cfg.SnapshotSchedule)
		}
		if !cfg.MetricsEnabled {
			t.Error("expected metrics to be enabled by default")
		}
		if cfg.RequestTimeout != 30*time.Second {
			t.Errorf("expected 30s timeout, got %s", cfg.RequestTimeout)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("GOAL_ON_TRACK_TOLERANCE_CENTS", "5")
		t.Setenv("BILL_HORIZON_DAYS", "14")
		t.Setenv("METRICS_ENABLED", "false")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.GoalOnTrackTolerance != 5 || cfg.BillHorizonDays != 14 || cfg.MetricsEnabled {
			t.Errorf("expected overrides to apply, got %+v", cfg)
		}
	})

	t.Run("schedule_off", func(t *testing.T) {
		t.Setenv("SNAPSHOT_SCHEDULE", "off")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.SnapshotSchedule != "" {
			t.Errorf("expected empty schedule, got %s", cfg.SnapshotSchedule)
		}
	})

	t.Run("invalid_values_fall_back", func(t *testing.T) {
		tests := []struct {
			name  string
			key   string
			value string
			check func(*Config) bool
		}{
			{"non_numeric_horizon", "BILL_HORIZON_DAYS", "soon", func(c *Config) bool { return c.BillHorizonDays == 30 }},
			{"negative_horizon", "BILL_HORIZON_DAYS", "-7", func(c *Config) bool { return c.BillHorizonDays == 30 }},
			{"negative_tolerance", "GOAL_ON_TRACK_TOLERANCE_CENTS", "-1", func(c *Config) bool { return c.GoalOnTrackTolerance == 1 }},
			{"non_numeric_tolerance", "GOAL_ON_TRACK_TOLERANCE_CENTS", "a cent", func(c *Config) bool { return c.GoalOnTrackTolerance == 1 }},
			{"invalid_metrics_flag", "METRICS_ENABLED", "maybe", func(c *Config) bool { return c.MetricsEnabled }},
			{"invalid_timeout", "REQUEST_TIMEOUT", "soon", func(c *Config) bool { return c.RequestTimeout == 30*time.Second }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Setenv(tt.key, tt.value)

				cfg, err := Load()
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !tt.check(cfg) {
					t.Errorf("expected %s=%q to fall back to its default, got %+v", tt.key, tt.value, cfg)
				}
			})
		}
	})
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	if got := cfg.DatabaseURL(); got != "postgres://u:p@h:5432/d?sslmode=disable" {
		t.Errorf("unexpected url %s", got)
	}
}
