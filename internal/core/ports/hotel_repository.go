package ports

import (
	"context"

	"github.com/wanderlust/hotel-api/internal/core/domain"
)

// HotelRepository persists hotels. Malformed ids return
// domain.ErrInvalidInput and unknown ids domain.ErrHotelNotFound.
type HotelRepository interface {
	Create(ctx context.Context, h *domain.Hotel) (*domain.Hotel, error)
	FindByID(ctx context.Context, id string) (*domain.Hotel, error)
	List(ctx context.Context) ([]*domain.Hotel, error)
	// Replace overwrites the editable fields of hotel id and returns the new state.
	Replace(ctx context.Context, id string, h *domain.Hotel) (*domain.Hotel, error)
	Delete(ctx context.Context, id string) error
}

// MessageRepository persists messages between members and agencies. It
// follows the same id conventions as HotelRepository.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// ListForParticipant returns messages where identity is sender or receiver.
	ListForParticipant(ctx context.Context, identity string) ([]*domain.Message, error)
	Delete(ctx context.Context, id string) error
}

// FavouriteRepository persists saved hotels. Create returns
// domain.ErrFavouriteExists for a duplicate (user, hotel) pair.
type FavouriteRepository interface {
	Create(ctx context.Context, f *domain.Favourite) (*domain.Favourite, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Favourite, error)
	DeleteByHotel(ctx context.Context, userID, hotelID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
