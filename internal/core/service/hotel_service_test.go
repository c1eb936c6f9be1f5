package service

import (
	"context"
	"errors"
	"testing"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

func hotelInput(name string) ports.HotelInput {
	return ports.HotelInput{
		Star:        4,
		Name:        name,
		City:        "Hong Kong",
		Country:     "HK",
		Coordinates: domain.Coordinates{Latitude: 22.3, Longitude: 114.2},
		Facilities:  []string{"wifi"},
	}
}

func TestHotelService_CreateUpdateDelete(t *testing.T) {
	repo := newStubHotelRepo()
	svc := NewHotelService(repo, discardLogger)
	ctx := context.Background()

	h, err := svc.Create(ctx, agency, hotelInput("Harbour View"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if h.AgencyID != "kachun01" {
		t.Fatalf("expected agencyId kachun01, got %q", h.AgencyID)
	}

	in := hotelInput("Harbour View II")
	in.Facilities = nil
	updated, err := svc.Update(ctx, agency, h.ID, in)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Harbour View II" || updated.Facilities != nil {
		t.Fatalf("expected fields to be replaced: %+v", updated)
	}
	if updated.AgencyID != "kachun01" || !updated.CreatedAt.Equal(h.CreatedAt) {
		t.Fatalf("owner and creation time must survive a replace: %+v", updated)
	}

	deleted, err := svc.Delete(ctx, agency, h.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != h.ID {
		t.Fatalf("expected deleted hotel to be returned")
	}
	if _, err := svc.Get(ctx, h.ID); !errors.Is(err, domain.ErrHotelNotFound) {
		t.Fatalf("expected ErrHotelNotFound, got %v", err)
	}
}

func TestHotelService_MemberDenied(t *testing.T) {
	svc := NewHotelService(newStubHotelRepo(), discardLogger)

	_, err := svc.Create(context.Background(), member, hotelInput("Nope"))
	var authzErr *domain.AuthorizationError
	if !errors.As(err, &authzErr) || authzErr.Reason != domain.DenyRoleMismatch {
		t.Fatalf("expected role_mismatch, got %v", err)
	}
}

func TestHotelService_InvalidID(t *testing.T) {
	svc := NewHotelService(newStubHotelRepo(), discardLogger)
	if _, err := svc.Get(context.Background(), "abc"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFavouriteService(t *testing.T) {
	hotels := newStubHotelRepo()
	h, _ := hotels.Create(context.Background(), &domain.Hotel{Name: "Harbour View"})
	favs := &stubFavouriteRepo{}
	svc := NewFavouriteService(favs, hotels, discardLogger)
	ctx := context.Background()

	if _, err := svc.Add(ctx, member, h.ID); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := svc.Add(ctx, member, h.ID); !errors.Is(err, domain.ErrFavouriteExists) {
		t.Fatalf("expected ErrFavouriteExists, got %v", err)
	}
	if _, err := svc.Add(ctx, member, "000000000000000000000bad"); !errors.Is(err, domain.ErrHotelNotFound) {
		t.Fatalf("expected ErrHotelNotFound, got %v", err)
	}

	list, err := svc.List(ctx, member)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 || list[0].HotelID != h.ID {
		t.Fatalf("unexpected favourites: %+v", list)
	}

	if err := svc.Remove(ctx, member, h.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := svc.Remove(ctx, member, h.ID); !errors.Is(err, domain.ErrFavouriteNotFound) {
		t.Fatalf("expected ErrFavouriteNotFound, got %v", err)
	}
}
