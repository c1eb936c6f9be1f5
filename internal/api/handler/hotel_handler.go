package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/hotel-api/internal/core/ports"
)

type HotelHandler struct {
	hotels ports.HotelService
}

func NewHotelHandler(hotels ports.HotelService) *HotelHandler {
	return &HotelHandler{hotels: hotels}
}

// List returns every hotel.
//
// @Summary      List hotels
// @Tags         hotels
// @Produce      json
// @Success      200  {object}  hotelListResponse
// @Router       /api/v1/hotel [get]
func (h *HotelHandler) List(c echo.Context) error {
	hotels, err := h.hotels.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hotelListResponse{Success: true, Count: len(hotels), Hotels: hotels})
}

// Get returns one hotel.
//
// @Summary      Get a hotel
// @Tags         hotels
// @Produce      json
// @Param        id   path      string  true  "Hotel id"
// @Success      200  {object}  hotelResponse
// @Failure      400  {object}  msgResponse
// @Failure      404  {object}  msgResponse
// @Router       /api/v1/hotel/{id} [get]
func (h *HotelHandler) Get(c echo.Context) error {
	hotel, err := h.hotels.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hotelResponse{Success: true, Hotel: hotel})
}

// Create publishes a hotel owned by the calling agency.
//
// @Summary      Create a hotel
// @Tags         hotels
// @Accept       json
// @Produce      json
// @Param        body  body      hotelRequest  true  "Hotel, top level or under \"hotel\"; carries the session token"
// @Success      201   {object}  hotelResponse
// @Failure      400   {object}  msgResponse
// @Failure      401   {object}  msgResponse
// @Failure      403   {object}  msgResponse
// @Router       /api/v1/hotel [post]
func (h *HotelHandler) Create(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req hotelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	hotel, err := h.hotels.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, hotelResponse{Success: true, Msg: "hotel created", Hotel: hotel})
}

// Update replaces the editable fields of a hotel.
//
// @Summary      Update a hotel
// @Tags         hotels
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Hotel id"
// @Param        body  body      hotelRequest  true  "Hotel, top level or under \"hotel\"; carries the session token"
// @Success      200   {object}  hotelResponse
// @Failure      400   {object}  msgResponse
// @Failure      401   {object}  msgResponse
// @Failure      403   {object}  msgResponse
// @Failure      404   {object}  msgResponse
// @Router       /api/v1/hotel/{id} [put]
func (h *HotelHandler) Update(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req hotelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	hotel, err := h.hotels.Update(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hotelResponse{Success: true, Msg: "hotel updated", Hotel: hotel})
}

// Delete removes a hotel.
//
// @Summary      Delete a hotel
// @Tags         hotels
// @Produce      json
// @Param        id     path      string  true  "Hotel id"
// @Param        token  query     string  false "Session token (or in the JSON body)"
// @Success      200    {object}  hotelResponse
// @Failure      400    {object}  msgResponse
// @Failure      401    {object}  msgResponse
// @Failure      403    {object}  msgResponse
// @Failure      404    {object}  msgResponse
// @Router       /api/v1/hotel/{id} [delete]
func (h *HotelHandler) Delete(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	hotel, err := h.hotels.Delete(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hotelResponse{Success: true, Msg: "hotel deleted", Hotel: hotel})
}
