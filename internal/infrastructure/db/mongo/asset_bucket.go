package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

// DefaultPhotoBucket is the GridFS bucket holding profile photos.
const DefaultPhotoBucket = "profilePhotos"

// AssetBucket stores assets in a GridFS bucket.
type AssetBucket struct {
	bucket *gridfs.Bucket
}

func NewAssetBucket(db *mongo.Database, name string) (*AssetBucket, error) {
	if name == "" {
		name = DefaultPhotoBucket
	}
	b, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(name))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket %q: %w", name, err)
	}
	return &AssetBucket{bucket: b}, nil
}

type fileMetadata struct {
	UploadedBy  string    `bson:"uploadedBy"`
	UploadDate  time.Time `bson:"uploadDate"`
	ContentType string    `bson:"contentType"`
}

// fileDoc is a row of the <bucket>.files collection.
type fileDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	Length     int64              `bson:"length"`
	Filename   string             `bson:"filename"`
	UploadDate time.Time          `bson:"uploadDate"`
	Metadata   fileMetadata       `bson:"metadata"`
}

func (d *fileDoc) toDomain() *domain.AssetRecord {
	meta := domain.AssetMetadata{UploadedBy: d.Metadata.UploadedBy, UploadDate: d.Metadata.UploadDate}
	if meta.UploadDate.IsZero() {
		meta.UploadDate = d.UploadDate
	}
	return &domain.AssetRecord{
		ID:          d.ID.Hex(),
		Filename:    d.Filename,
		ContentType: d.Metadata.ContentType,
		Length:      d.Length,
		Metadata:    meta,
	}
}

func parseAssetID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrAssetNotFound
	}
	return oid, nil
}

func (b *AssetBucket) OpenUpload(_ context.Context, filename, contentType string, meta domain.AssetMetadata) (ports.AssetUpload, error) {
	id := primitive.NewObjectID()
	opts := options.GridFSUpload().SetMetadata(fileMetadata{
		UploadedBy:  meta.UploadedBy,
		UploadDate:  meta.UploadDate,
		ContentType: contentType,
	})
	stream, err := b.bucket.OpenUploadStreamWithID(id, filename, opts)
	if err != nil {
		return nil, fmt.Errorf("open upload stream: %w", err)
	}
	return &gridUpload{id: id, stream: stream}, nil
}

func (b *AssetBucket) Stat(ctx context.Context, id string) (*domain.AssetRecord, error) {
	oid, err := parseAssetID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc fileDoc
	if err := b.bucket.GetFilesCollection().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("stat asset: %w", err)
	}
	return doc.toDomain(), nil
}

// OpenDownload streams the chunks of id in order. The caller closes the
// returned reader.
func (b *AssetBucket) OpenDownload(_ context.Context, id string) (io.ReadCloser, error) {
	oid, err := parseAssetID(id)
	if err != nil {
		return nil, err
	}
	stream, err := b.bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("open download stream: %w", err)
	}
	return stream, nil
}

func (b *AssetBucket) FindByUploader(ctx context.Context, uploader string) (ports.AssetCursor, error) {
	cur, err := b.bucket.FindContext(ctx, bson.M{"metadata.uploadedBy": uploader})
	if err != nil {
		return nil, fmt.Errorf("find assets: %w", err)
	}
	return &fileCursor{cur: cur}, nil
}

func (b *AssetBucket) Delete(ctx context.Context, id string) error {
	oid, err := parseAssetID(id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := b.bucket.DeleteContext(ctx, oid); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return domain.ErrAssetNotFound
		}
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

type gridUpload struct {
	id     primitive.ObjectID
	stream *gridfs.UploadStream
}

func (u *gridUpload) ID() string                  { return u.id.Hex() }
func (u *gridUpload) Write(p []byte) (int, error) { return u.stream.Write(p) }
func (u *gridUpload) Close() error                { return u.stream.Close() }
func (u *gridUpload) Abort() error                { return u.stream.Abort() }

type fileCursor struct {
	cur *mongo.Cursor
}

func (c *fileCursor) Next(ctx context.Context) bool { return c.cur.Next(ctx) }

func (c *fileCursor) Record() (*domain.AssetRecord, error) {
	var doc fileDoc
	if err := c.cur.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (c *fileCursor) Err() error                      { return c.cur.Err() }
func (c *fileCursor) Close(ctx context.Context) error { return c.cur.Close(ctx) }
