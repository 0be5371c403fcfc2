package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "MONGO_DB", "REDIS_URI", "ANALYTICS_CACHE_TTL", "MIN_SEGMENT_SIZE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.Mongo.Database != "pulseboard" {
		t.Fatalf("port=%q db=%q", cfg.Port, cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Fatalf("redis addr = %q", cfg.Redis.Addr)
	}
	if cfg.AnalyticsCacheTTL != 10*time.Minute || cfg.MinSegmentSize != 3 {
		t.Fatalf("ttl=%s min=%d", cfg.AnalyticsCacheTTL, cfg.MinSegmentSize)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URI", "redis://cache:6380")
	t.Setenv("ANALYTICS_CACHE_TTL", "90s")
	t.Setenv("MIN_SEGMENT_SIZE", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.Redis.Addr, "cache:6380"; got != want {
		t.Fatalf("redis addr = %q, want %q", got, want)
	}
	if cfg.Port != "9090" || cfg.AnalyticsCacheTTL != 90*time.Second || cfg.MinSegmentSize != 5 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MIN_SEGMENT_SIZE", "lots")
	t.Setenv("ANALYTICS_CACHE_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MinSegmentSize != 3 || cfg.AnalyticsCacheTTL != 10*time.Minute {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("PORT", "70000")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}

	t.Setenv("PORT", "8080")
	t.Setenv("MIN_SEGMENT_SIZE", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero segment size")
	}
}
