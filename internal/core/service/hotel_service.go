package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

type HotelService struct {
	repo   ports.HotelRepository
	now    func() time.Time
	logger zerolog.Logger
}

func NewHotelService(repo ports.HotelRepository, logger zerolog.Logger) *HotelService {
	return &HotelService{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

func (s *HotelService) List(ctx context.Context) ([]*domain.Hotel, error) {
	hotels, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageErr("list hotels", err)
	}
	return hotels, nil
}

func (s *HotelService) Get(ctx context.Context, id string) (*domain.Hotel, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, hotelErr("find hotel", err)
	}
	return h, nil
}

// Create publishes a hotel owned by the calling agency.
func (s *HotelService) Create(ctx context.Context, actor domain.Principal, in ports.HotelInput) (*domain.Hotel, error) {
	if err := authorizeHotel(actor, "", domain.ActionCreate); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: hotel name is required", domain.ErrInvalidInput)
	}
	now := s.now()
	h := applyHotelInput(&domain.Hotel{AgencyID: actor.Identity, CreatedAt: now}, in)
	h.UpdatedAt = now

	created, err := s.repo.Create(ctx, h)
	if err != nil {
		return nil, storageErr("create hotel", err)
	}
	s.logger.Info().Str("agency", actor.Identity).Str("hotel_id", created.ID).Msg("hotel created")
	return created, nil
}

// Update replaces the editable fields of hotel id.
func (s *HotelService) Update(ctx context.Context, actor domain.Principal, id string, in ports.HotelInput) (*domain.Hotel, error) {
	if err := authorizeHotel(actor, id, domain.ActionUpdate); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: hotel name is required", domain.ErrInvalidInput)
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, hotelErr("find hotel", err)
	}
	next := applyHotelInput(current, in)
	next.UpdatedAt = s.now()

	updated, err := s.repo.Replace(ctx, id, next)
	if err != nil {
		return nil, hotelErr("replace hotel", err)
	}
	s.logger.Info().Str("actor", actor.Identity).Str("hotel_id", id).Msg("hotel updated")
	return updated, nil
}

// Delete removes hotel id and returns what was removed.
func (s *HotelService) Delete(ctx context.Context, actor domain.Principal, id string) (*domain.Hotel, error) {
	if err := authorizeHotel(actor, id, domain.ActionDelete); err != nil {
		return nil, err
	}
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, hotelErr("find hotel", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, hotelErr("delete hotel", err)
	}
	s.logger.Info().Str("actor", actor.Identity).Str("hotel_id", id).Msg("hotel deleted")
	return h, nil
}

func authorizeHotel(actor domain.Principal, id string, a domain.Action) error {
	res := domain.ResourceDescriptor{Type: domain.ResourceHotel, ResourceID: id, AgencyScoped: true}
	return Authorize(actor, res, a).Err()
}

func applyHotelInput(h *domain.Hotel, in ports.HotelInput) *domain.Hotel {
	h.Star = in.Star
	h.Name = in.Name
	h.AccommodationType = in.AccommodationType
	h.Address = in.Address
	h.City = in.City
	h.Coordinates = in.Coordinates
	h.Country = in.Country
	h.Description = in.Description
	h.Email = in.Email
	h.Facilities = in.Facilities
	h.LastUpdate = in.LastUpdate
	h.Phones = in.Phones
	h.Ranking = in.Ranking
	h.Web = in.Web
	return h
}

func hotelErr(op string, err error) error {
	if errors.Is(err, domain.ErrHotelNotFound) || errors.Is(err, domain.ErrInvalidInput) {
		return err
	}
	return storageErr(op, err)
}
