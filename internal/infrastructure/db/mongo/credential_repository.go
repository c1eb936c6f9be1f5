package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wanderlust/hotel-api/internal/core/domain"
)

const usersCollection = "users"

type CredentialRepository struct {
	col *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{col: db.Collection(usersCollection)}
}

// userDoc is the stored shape of a credential. Role is kept as the raw
// integer so that a bad value is reported instead of silently defaulted.
type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Password     string             `bson:"password"`
	Token        string             `bson:"token,omitempty"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone"`
	Name         domain.PersonName  `bson:"name"`
	Status       bool               `bson:"status"`
	Role         int                `bson:"role"`
	ProfilePhoto string             `bson:"profilePhoto,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *userDoc) toDomain() (*domain.Credential, error) {
	role, err := domain.ParseRole(d.Role)
	if err != nil {
		return nil, fmt.Errorf("decode user %q: %w", d.Username, err)
	}
	return &domain.Credential{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		SecretHash:   d.Password,
		Token:        d.Token,
		Email:        d.Email,
		Phone:        d.Phone,
		Name:         d.Name,
		Status:       d.Status,
		Role:         role,
		ProfilePhoto: d.ProfilePhoto,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func (r *CredentialRepository) findOne(ctx context.Context, filter bson.M) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain()
}

func (r *CredentialRepository) FindByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *CredentialRepository) FindByToken(ctx context.Context, token string) (*domain.Credential, error) {
	if token == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"token": token})
}

// Update issues a single $set keyed by username.
func (r *CredentialRepository) Update(ctx context.Context, username string, f domain.CredentialUpdate) error {
	if f.IsEmpty() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	if f.SecretHash != nil {
		set["password"] = *f.SecretHash
	}
	if f.Token != nil {
		set["token"] = *f.Token
	}
	if f.Email != nil {
		set["email"] = *f.Email
	}
	if f.Phone != nil {
		set["phone"] = *f.Phone
	}
	if f.Name != nil {
		set["name"] = *f.Name
	}
	if f.Status != nil {
		set["status"] = *f.Status
	}
	if f.Role != nil {
		set["role"] = int(*f.Role)
	}
	if f.ProfilePhoto != nil {
		set["profilePhoto"] = *f.ProfilePhoto
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"username": username}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *CredentialRepository) List(ctx context.Context) ([]*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	out := make([]*domain.Credential, 0, len(docs))
	for i := range docs {
		c, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CredentialRepository) Create(ctx context.Context, c *domain.Credential) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Username:     c.Username,
		Password:     c.SecretHash,
		Email:        c.Email,
		Phone:        c.Phone,
		Name:         c.Name,
		Status:       c.Status,
		Role:         int(c.Role),
		ProfilePhoto: c.ProfilePhoto,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain()
}

// Delete never matches an admin record.
func (r *CredentialRepository) Delete(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"username": username, "role": bson.M{"$ne": int(domain.RoleAdmin)}}
	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
