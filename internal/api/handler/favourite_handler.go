package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/hotel-api/internal/core/ports"
)

type FavouriteHandler struct {
	favourites ports.FavouriteService
}

func NewFavouriteHandler(favourites ports.FavouriteService) *FavouriteHandler {
	return &FavouriteHandler{favourites: favourites}
}

// List returns the caller's saved hotels.
//
// @Summary      List favourites
// @Tags         favourites
// @Produce      json
// @Param        token  query     string  false  "Session token (or in the JSON body)"
// @Success      200    {object}  favouriteListResponse
// @Failure      401    {object}  msgResponse
// @Router       /api/v1/favourlist [get]
func (h *FavouriteHandler) List(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	favs, err := h.favourites.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favouriteListResponse{Success: true, Count: len(favs), Favourites: favs})
}

// Add saves a hotel for the caller.
//
// @Summary      Add a favourite
// @Tags         favourites
// @Accept       json
// @Produce      json
// @Param        body  body      favouriteRequest  true  "Hotel id; carries the session token"
// @Success      201   {object}  favouriteResponse
// @Failure      400   {object}  msgResponse
// @Failure      401   {object}  msgResponse
// @Failure      404   {object}  msgResponse
// @Failure      409   {object}  msgResponse
// @Router       /api/v1/favourlist [post]
func (h *FavouriteHandler) Add(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req favouriteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	fav, err := h.favourites.Add(c.Request().Context(), actor, req.HotelID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, favouriteResponse{Success: true, Favourite: fav})
}

// Remove drops a saved hotel.
//
// @Summary      Remove a favourite
// @Tags         favourites
// @Accept       json
// @Produce      json
// @Param        body  body      favouriteRequest  true  "Hotel id; carries the session token"
// @Success      200   {object}  msgResponse
// @Failure      401   {object}  msgResponse
// @Failure      404   {object}  msgResponse
// @Router       /api/v1/favourlist [delete]
func (h *FavouriteHandler) Remove(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req favouriteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.favourites.Remove(c.Request().Context(), actor, req.HotelID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgResponse{Msg: "favourite removed"})
}
