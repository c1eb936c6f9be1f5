package ports

import (
	"context"
	"io"

	"github.com/wanderlust/hotel-api/internal/core/domain"
)

// AssetUpload is an open write channel for one asset.
type AssetUpload interface {
	// ID is the store-generated identifier of the asset being written.
	ID() string
	Write(p []byte) (int, error)
	// Close commits the written bytes.
	Close() error
	// Abort discards everything written so far.
	Abort() error
}

// AssetCursor iterates over asset records lazily.
type AssetCursor interface {
	Next(ctx context.Context) bool
	Record() (*domain.AssetRecord, error)
	Err() error
	Close(ctx context.Context) error
}

// AssetBucket is the binary object store backing profile photos.
// Lookups of unknown or malformed ids return domain.ErrAssetNotFound.
type AssetBucket interface {
	OpenUpload(ctx context.Context, filename, contentType string, meta domain.AssetMetadata) (AssetUpload, error)
	Stat(ctx context.Context, id string) (*domain.AssetRecord, error)
	OpenDownload(ctx context.Context, id string) (io.ReadCloser, error)
	FindByUploader(ctx context.Context, uploader string) (AssetCursor, error)
	Delete(ctx context.Context, id string) error
}

// UploadDedup remembers which asset an idempotent upload produced.
type UploadDedup interface {
	Lookup(ctx context.Context, uploader, key string) (assetID string, found bool, err error)
	Remember(ctx context.Context, uploader, key, assetID string) error
}

// AssetCleanup is a request to remove every asset uploaded by Identity.
type AssetCleanup struct {
	Identity string
}

// CleanupScheduler queues asset cleanup for asynchronous processing.
type CleanupScheduler interface {
	Enqueue(job AssetCleanup)
}
