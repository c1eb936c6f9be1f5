package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wanderlust/hotel-api/internal/core/domain"
)

const favouritesCollection = "favourites"

type FavouriteRepository struct {
	col *mongo.Collection
}

func NewFavouriteRepository(db *mongo.Database) *FavouriteRepository {
	return &FavouriteRepository{col: db.Collection(favouritesCollection)}
}

// Create relies on the unique (userId, hotelId) index to reject duplicates.
func (r *FavouriteRepository) Create(ctx context.Context, f *domain.Favourite) (*domain.Favourite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *f
	doc.ID = ""
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFavouriteExists
		}
		return nil, fmt.Errorf("insert favourite: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid.Hex()
	}
	return &doc, nil
}

func (r *FavouriteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Favourite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list favourites: %w", err)
	}
	defer cur.Close(ctx)

	favs := []*domain.Favourite{}
	if err := cur.All(ctx, &favs); err != nil {
		return nil, fmt.Errorf("decode favourites: %w", err)
	}
	return favs, nil
}

func (r *FavouriteRepository) DeleteByHotel(ctx context.Context, userID, hotelID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"userId": userID, "hotelId": hotelID})
	if err != nil {
		return fmt.Errorf("delete favourite: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFavouriteNotFound
	}
	return nil
}

func (r *FavouriteRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("delete favourites: %w", err)
	}
	return nil
}
