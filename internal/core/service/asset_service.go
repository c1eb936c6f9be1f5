package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

// DefaultMaxUploadBytes caps a single profile photo.
const DefaultMaxUploadBytes int64 = 5 << 20

// UploadHandle is an in-progress upload. It is owned by one request and is
// not safe for concurrent use.
type UploadHandle struct {
	upload   ports.AssetUpload
	uploader string
	limit    int64
	written  int64
	done     bool
}

// ID is the identifier the asset will have once finalized.
func (h *UploadHandle) ID() string { return h.upload.ID() }

// Written is the number of bytes accepted so far.
func (h *UploadHandle) Written() int64 { return h.written }

// Write appends p to the upload. It implements io.Writer so request bodies
// can be streamed in with io.Copy.
func (h *UploadHandle) Write(p []byte) (int, error) {
	if h.done {
		return 0, fmt.Errorf("write chunk: %w: upload already finished", domain.ErrInvalidInput)
	}
	if h.limit > 0 && h.written+int64(len(p)) > h.limit {
		return 0, domain.ErrOversize
	}
	n, err := h.upload.Write(p)
	h.written += int64(n)
	if err != nil {
		return n, storageErr("write chunk", err)
	}
	return n, nil
}

// AssetService stores and streams binary assets and owns the profile photo
// workflow.
type AssetService struct {
	bucket   ports.AssetBucket
	creds    ports.CredentialRepository
	dedup    ports.UploadDedup
	maxBytes int64
	now      func() time.Time
	logger   zerolog.Logger
}

// NewAssetService wires the asset store. dedup may be nil, in which case
// Idempotency-Key values are ignored.
func NewAssetService(bucket ports.AssetBucket, creds ports.CredentialRepository, dedup ports.UploadDedup, maxBytes int64, logger zerolog.Logger) *AssetService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &AssetService{
		bucket:   bucket,
		creds:    creds,
		dedup:    dedup,
		maxBytes: maxBytes,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
}

// BeginUpload allocates a fresh asset id and opens a write channel for it.
func (s *AssetService) BeginUpload(ctx context.Context, filename, contentType, uploader string) (*UploadHandle, error) {
	meta := domain.AssetMetadata{UploadedBy: uploader, UploadDate: s.now()}
	up, err := s.bucket.OpenUpload(ctx, filename, contentType, meta)
	if err != nil {
		return nil, storageErr("begin upload", err)
	}
	return &UploadHandle{upload: up, uploader: uploader, limit: s.maxBytes}, nil
}

// WriteChunk appends one chunk to h.
func (s *AssetService) WriteChunk(h *UploadHandle, p []byte) error {
	_, err := h.Write(p)
	return err
}

// Finalize commits h and re-reads the stored record to verify it. Any
// record that fails verification is removed before returning.
func (s *AssetService) Finalize(ctx context.Context, h *UploadHandle) (*domain.AssetRecord, error) {
	if h.done {
		return nil, fmt.Errorf("finalize: %w: upload already finished", domain.ErrInvalidInput)
	}
	h.done = true

	if h.written == 0 {
		if err := h.upload.Abort(); err != nil {
			s.logger.Warn().Err(err).Str("asset_id", h.ID()).Msg("abort empty upload")
		}
		return nil, domain.ErrEmptyUpload
	}
	if err := h.upload.Close(); err != nil {
		return nil, storageErr("finalize upload", err)
	}

	id := h.ID()
	rec, err := s.bucket.Stat(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return nil, domain.ErrVerificationFailed
		}
		return nil, storageErr("verify upload", err)
	}

	switch {
	case rec.Length == 0:
		s.discard(ctx, id)
		return nil, domain.ErrEmptyUpload
	case rec.Length != h.written, rec.Metadata.UploadedBy != h.uploader:
		s.logger.Warn().
			Str("asset_id", id).
			Int64("stored", rec.Length).
			Int64("written", h.written).
			Msg("upload verification failed")
		s.discard(ctx, id)
		return nil, domain.ErrVerificationFailed
	}
	return rec, nil
}

// Abort discards h. It is a no-op once h has been finalized.
func (s *AssetService) Abort(h *UploadHandle) {
	if h.done {
		return
	}
	h.done = true
	if err := h.upload.Abort(); err != nil {
		s.logger.Warn().Err(err).Str("asset_id", h.ID()).Msg("abort upload")
	}
}

// OpenDownload opens asset id for streaming. The returned body stops
// yielding data as soon as ctx is done.
func (s *AssetService) OpenDownload(ctx context.Context, id string) (*domain.AssetDownload, error) {
	rec, err := s.bucket.Stat(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return nil, err
		}
		return nil, storageErr("stat asset", err)
	}
	body, err := s.bucket.OpenDownload(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return nil, err
		}
		return nil, storageErr("open download", err)
	}
	return &domain.AssetDownload{Record: rec, Body: newContextReader(ctx, body)}, nil
}

// FindByOwner lists every asset uploaded by uploader. Each range over the
// returned sequence runs a new query.
func (s *AssetService) FindByOwner(ctx context.Context, uploader string) iter.Seq2[*domain.AssetRecord, error] {
	return func(yield func(*domain.AssetRecord, error) bool) {
		cur, err := s.bucket.FindByUploader(ctx, uploader)
		if err != nil {
			yield(nil, storageErr("find assets", err))
			return
		}
		defer cur.Close(context.WithoutCancel(ctx))

		for cur.Next(ctx) {
			rec, err := cur.Record()
			if err != nil {
				yield(nil, storageErr("decode asset", err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(nil, storageErr("iterate assets", err))
		}
	}
}

// UploadProfilePhoto stores a new photo for actor and points the actor's
// credential at it. The credential is only written after the asset has been
// verified.
func (s *AssetService) UploadProfilePhoto(ctx context.Context, actor domain.Principal, in ports.PhotoUploadInput) (*domain.AssetRecord, error) {
	res := domain.ResourceDescriptor{Type: domain.ResourceAsset, OwnerIdentity: actor.Identity}
	if err := Authorize(actor, res, domain.ActionUpload).Err(); err != nil {
		return nil, err
	}
	if in.Body == nil {
		return nil, domain.ErrMissingFile
	}
	if !domain.IsAllowedPhotoType(in.ContentType) {
		return nil, domain.ErrDisallowedContentType
	}

	if rec := s.replay(ctx, actor.Identity, in.IdempotencyKey); rec != nil {
		return rec, nil
	}

	h, err := s.BeginUpload(ctx, in.Filename, in.ContentType, actor.Identity)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(h, in.Body); err != nil {
		s.Abort(h)
		if errors.Is(err, domain.ErrOversize) || errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("read upload: %w", err)
	}
	rec, err := s.Finalize(ctx, h)
	if err != nil {
		return nil, err
	}

	photo := rec.ID
	if err := s.creds.Update(ctx, actor.Identity, domain.CredentialUpdate{ProfilePhoto: &photo}); err != nil {
		s.discard(ctx, rec.ID)
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, storageErr("set profile photo", err)
	}

	if in.IdempotencyKey != "" && s.dedup != nil {
		if err := s.dedup.Remember(ctx, actor.Identity, in.IdempotencyKey, rec.ID); err != nil {
			s.logger.Warn().Err(err).Str("username", actor.Identity).Msg("failed to remember upload key")
		}
	}

	s.logger.Info().
		Str("username", actor.Identity).
		Str("asset_id", rec.ID).
		Int64("length", rec.Length).
		Msg("profile photo uploaded")
	return rec, nil
}

// replay returns the asset a previous request with the same key produced,
// if it still exists.
func (s *AssetService) replay(ctx context.Context, uploader, key string) *domain.AssetRecord {
	if key == "" || s.dedup == nil {
		return nil
	}
	id, found, err := s.dedup.Lookup(ctx, uploader, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", uploader).Msg("upload key lookup failed, uploading anyway")
		return nil
	}
	if !found {
		return nil
	}
	rec, err := s.bucket.Stat(ctx, id)
	if err != nil {
		return nil
	}
	s.logger.Info().Str("username", uploader).Str("asset_id", id).Msg("idempotent upload replay")
	return rec
}

// ProfilePhoto opens the profile photo of username. When scope is set the
// user must hold that role.
func (s *AssetService) ProfilePhoto(ctx context.Context, username string, scope *domain.Role) (*domain.AssetDownload, error) {
	cred, err := s.creds.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, storageErr("find user", err)
	}
	if scope != nil && cred.Role != *scope {
		return nil, domain.ErrUserNotFound
	}
	if cred.ProfilePhoto == "" {
		return nil, domain.ErrAssetNotFound
	}
	return s.OpenDownload(ctx, cred.ProfilePhoto)
}

// Download opens an asset by id.
func (s *AssetService) Download(ctx context.Context, id string) (*domain.AssetDownload, error) {
	return s.OpenDownload(ctx, id)
}

// ListOwn collects the assets actor uploaded.
func (s *AssetService) ListOwn(ctx context.Context, actor domain.Principal) ([]*domain.AssetRecord, error) {
	res := domain.ResourceDescriptor{Type: domain.ResourceAsset, OwnerIdentity: actor.Identity}
	if err := Authorize(actor, res, domain.ActionRead).Err(); err != nil {
		return nil, err
	}
	out := []*domain.AssetRecord{}
	for rec, err := range s.FindByOwner(ctx, actor.Identity) {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// PurgeOwner deletes every asset uploaded by identity and reports how many
// were removed.
func (s *AssetService) PurgeOwner(ctx context.Context, identity string) (int, error) {
	var ids []string
	for rec, err := range s.FindByOwner(ctx, identity) {
		if err != nil {
			return 0, err
		}
		ids = append(ids, rec.ID)
	}
	removed := 0
	for _, id := range ids {
		if err := s.bucket.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrAssetNotFound) {
			return removed, storageErr("delete asset", err)
		}
		removed++
	}
	return removed, nil
}

// discard removes a rejected asset even if the request was cancelled.
func (s *AssetService) discard(ctx context.Context, id string) {
	if err := s.bucket.Delete(context.WithoutCancel(ctx), id); err != nil && !errors.Is(err, domain.ErrAssetNotFound) {
		s.logger.Error().Err(err).Str("asset_id", id).Msg("failed to delete rejected asset")
	}
}
