package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Mongo.PhotoBucket != "profilePhotos" {
		t.Fatalf("unexpected bucket: %q", cfg.Mongo.PhotoBucket)
	}
	if cfg.Uploads.MaxBytes != 5<<20 {
		t.Fatalf("unexpected upload limit: %d", cfg.Uploads.MaxBytes)
	}
	if cfg.Uploads.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", cfg.Uploads.IdempotencyTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("CLEANUP_WORKERS", "2")
	t.Setenv("UPLOAD_IDEMPOTENCY_TTL", "90m")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "9000" || cfg.IsDevelopment() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Cleanup.Workers != 2 {
		t.Fatalf("expected 2 workers, got %d", cfg.Cleanup.Workers)
	}
	if cfg.Uploads.IdempotencyTTL != 90*time.Minute {
		t.Fatalf("unexpected ttl: %s", cfg.Uploads.IdempotencyTTL)
	}
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("CLEANUP_WORKERS", "many")
	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for non-numeric worker count")
	}
}
