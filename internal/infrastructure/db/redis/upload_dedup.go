package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultUploadTTL is how long an Idempotency-Key is remembered.
const DefaultUploadTTL = 24 * time.Hour

// UploadDedup maps an uploader's Idempotency-Key to the asset it produced.
// Key format: upload:<identity>:<idempotency_key>
type UploadDedup struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUploadDedup(client *redis.Client, ttl time.Duration) *UploadDedup {
	if ttl <= 0 {
		ttl = DefaultUploadTTL
	}
	return &UploadDedup{client: client, ttl: ttl}
}

// Lookup returns the asset id stored for key, if any.
func (d *UploadDedup) Lookup(ctx context.Context, uploader, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := d.client.Get(ctx, d.key(uploader, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("upload dedup lookup: %w", err)
	}
	return id, true, nil
}

// Remember stores assetID under key for the configured TTL. The first
// writer wins so a replay never points at a newer asset.
func (d *UploadDedup) Remember(ctx context.Context, uploader, key, assetID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := d.client.SetNX(ctx, d.key(uploader, key), assetID, d.ttl).Err(); err != nil {
		return fmt.Errorf("upload dedup remember: %w", err)
	}
	return nil
}

func (d *UploadDedup) key(uploader, key string) string {
	return fmt.Sprintf("upload:%s:%s", uploader, key)
}
