package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Tracking.Interval != 10*time.Second || cfg.Tracking.Loop {
		t.Errorf("unexpected tracking defaults %+v", cfg.Tracking)
	}
	if cfg.Payment.Delay != 2*time.Second || cfg.Payment.MaxRetries != 3 {
		t.Errorf("unexpected payment defaults %+v", cfg.Payment)
	}
	if cfg.Redis.Enabled || cfg.Kafka.Brokers != "" {
		t.Error("redis and kafka must be off by default")
	}
	if cfg.Kafka.Topic != "swiftbus.bookings" {
		t.Errorf("unexpected topic %s", cfg.Kafka.Topic)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TRACKING_INTERVAL", "3s")
	t.Setenv("TRACKING_LOOP", "true")
	t.Setenv("PAYMENT_MAX_RETRIES", "5")
	t.Setenv("REDIS_ENABLED", "1")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("CATALOG_FILE", "/etc/swiftbus/trips.yaml")

	cfg := Load()

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Tracking.Interval != 3*time.Second || !cfg.Tracking.Loop {
		t.Errorf("unexpected tracking %+v", cfg.Tracking)
	}
	if cfg.Payment.MaxRetries != 5 {
		t.Errorf("expected 5 retries, got %d", cfg.Payment.MaxRetries)
	}
	if !cfg.Redis.Enabled || cfg.Redis.DB != 2 {
		t.Errorf("unexpected redis %+v", cfg.Redis)
	}
	if !cfg.Log.JSON {
		t.Error("expected JSON logging")
	}
	if cfg.Data.CatalogFile != "/etc/swiftbus/trips.yaml" {
		t.Errorf("unexpected catalog file %s", cfg.Data.CatalogFile)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("TRACKING_INTERVAL", "soon")
	t.Setenv("PAYMENT_DELAY", "-1s")
	t.Setenv("REDIS_DB", "one")
	t.Setenv("TRACKING_LOOP", "maybe")

	cfg := Load()

	if cfg.Tracking.Interval != 10*time.Second {
		t.Errorf("expected default interval, got %v", cfg.Tracking.Interval)
	}
	if cfg.Payment.Delay != 2*time.Second {
		t.Errorf("expected default delay, got %v", cfg.Payment.Delay)
	}
	if cfg.Redis.DB != 0 || cfg.Tracking.Loop {
		t.Error("unparseable values must fall back to defaults")
	}
}
