package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

type FavouriteService struct {
	repo   ports.FavouriteRepository
	hotels ports.HotelRepository
	logger zerolog.Logger
}

func NewFavouriteService(repo ports.FavouriteRepository, hotels ports.HotelRepository, logger zerolog.Logger) *FavouriteService {
	return &FavouriteService{repo: repo, hotels: hotels, logger: logger}
}

func (s *FavouriteService) List(ctx context.Context, actor domain.Principal) ([]*domain.Favourite, error) {
	if err := authorizeFavourite(actor, domain.ActionRead); err != nil {
		return nil, err
	}
	favs, err := s.repo.ListByUser(ctx, actor.Identity)
	if err != nil {
		return nil, storageErr("list favourites", err)
	}
	return favs, nil
}

// Add saves hotelID for actor. The hotel must exist.
func (s *FavouriteService) Add(ctx context.Context, actor domain.Principal, hotelID string) (*domain.Favourite, error) {
	if err := authorizeFavourite(actor, domain.ActionCreate); err != nil {
		return nil, err
	}
	if _, err := s.hotels.FindByID(ctx, hotelID); err != nil {
		return nil, hotelErr("find hotel", err)
	}
	fav, err := s.repo.Create(ctx, &domain.Favourite{UserID: actor.Identity, HotelID: hotelID})
	if err != nil {
		if errors.Is(err, domain.ErrFavouriteExists) {
			return nil, err
		}
		return nil, storageErr("add favourite", err)
	}
	return fav, nil
}

func (s *FavouriteService) Remove(ctx context.Context, actor domain.Principal, hotelID string) error {
	if err := authorizeFavourite(actor, domain.ActionDelete); err != nil {
		return err
	}
	if err := s.repo.DeleteByHotel(ctx, actor.Identity, hotelID); err != nil {
		if errors.Is(err, domain.ErrFavouriteNotFound) {
			return err
		}
		return storageErr("remove favourite", err)
	}
	return nil
}

func authorizeFavourite(actor domain.Principal, a domain.Action) error {
	res := domain.ResourceDescriptor{Type: domain.ResourceFavourite, OwnerIdentity: actor.Identity}
	return Authorize(actor, res, a).Err()
}
