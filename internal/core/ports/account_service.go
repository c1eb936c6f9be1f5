package ports

import (
	"context"
	"io"

	"github.com/wanderlust/hotel-api/internal/core/domain"
)

// RegisterInput carries everything needed to create a credential.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Phone    string
	Name     domain.PersonName
	Role     domain.Role
}

// UpdateUserInput is a partial profile update. Status and Role are applied
// only for admin callers.
type UpdateUserInput struct {
	Password *string
	Email    *string
	Phone    *string
	Name     *domain.PersonName
	Status   *bool
	Role     *domain.Role
}

// AccountService manages credentials on behalf of a caller.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Credential, error)
	Create(ctx context.Context, actor domain.Principal, in RegisterInput) (*domain.Credential, error)
	// Update and Delete restrict the target to scope when scope is non-nil.
	Update(ctx context.Context, actor domain.Principal, target string, scope *domain.Role, in UpdateUserInput) error
	Delete(ctx context.Context, actor domain.Principal, target string, scope *domain.Role) error
	List(ctx context.Context, actor domain.Principal) ([]*domain.Credential, error)
	ListPublic(ctx context.Context) ([]*domain.Credential, error)
}

// PhotoUploadInput is a single profile photo taken from a multipart request.
type PhotoUploadInput struct {
	Filename       string
	ContentType    string
	Body           io.Reader
	IdempotencyKey string
}

// PhotoService is the handler-facing side of the asset store.
type PhotoService interface {
	UploadProfilePhoto(ctx context.Context, actor domain.Principal, in PhotoUploadInput) (*domain.AssetRecord, error)
	ProfilePhoto(ctx context.Context, username string, scope *domain.Role) (*domain.AssetDownload, error)
	Download(ctx context.Context, id string) (*domain.AssetDownload, error)
	ListOwn(ctx context.Context, actor domain.Principal) ([]*domain.AssetRecord, error)
}

// HotelInput is the editable part of a hotel.
type HotelInput struct {
	Star              int
	Name              string
	AccommodationType string
	Address           string
	City              string
	Coordinates       domain.Coordinates
	Country           string
	Description       string
	Email             string
	Facilities        []string
	LastUpdate        string
	Phones            string
	Ranking           int
	Web               string
}

// HotelService manages hotel listings.
type HotelService interface {
	List(ctx context.Context) ([]*domain.Hotel, error)
	Get(ctx context.Context, id string) (*domain.Hotel, error)
	Create(ctx context.Context, actor domain.Principal, in HotelInput) (*domain.Hotel, error)
	Update(ctx context.Context, actor domain.Principal, id string, in HotelInput) (*domain.Hotel, error)
	Delete(ctx context.Context, actor domain.Principal, id string) (*domain.Hotel, error)
}

// SendMessageInput is a message addressed by receiver username.
type SendMessageInput struct {
	Receiver string
	Content  string
	Type     domain.MessageType
}

// MessageService manages messages between members and agencies.
type MessageService interface {
	List(ctx context.Context, actor domain.Principal) ([]*domain.Message, error)
	Send(ctx context.Context, actor domain.Principal, in SendMessageInput) (*domain.Message, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

// FavouriteService manages a caller's saved hotels.
type FavouriteService interface {
	List(ctx context.Context, actor domain.Principal) ([]*domain.Favourite, error)
	Add(ctx context.Context, actor domain.Principal, hotelID string) (*domain.Favourite, error)
	Remove(ctx context.Context, actor domain.Principal, hotelID string) error
}
