package domain

import (
	"errors"
	"time"
)

var ErrHotelNotFound = errors.New("hotel not found")

// Coordinates is a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"  bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Hotel is a listing published by an agency.
type Hotel struct {
	ID                string      `json:"_id"                bson:"_id,omitempty"`
	Star              int         `json:"star"               bson:"star"`
	Name              string      `json:"name"               bson:"name"`
	AccommodationType string      `json:"accommodationType"  bson:"accommodationType"`
	Address           string      `json:"address"            bson:"address"`
	City              string      `json:"city"               bson:"city"`
	Coordinates       Coordinates `json:"coordinates"        bson:"coordinates"`
	Country           string      `json:"country"            bson:"country"`
	Description       string      `json:"description"        bson:"description"`
	Email             string      `json:"email"              bson:"email"`
	Facilities        []string    `json:"facilities"         bson:"facilities"`
	LastUpdate        string      `json:"lastUpdate,omitempty" bson:"lastUpdate,omitempty"`
	Phones            string      `json:"phones,omitempty"   bson:"phones,omitempty"`
	Ranking           int         `json:"ranking"            bson:"ranking"`
	Web               string      `json:"web"                bson:"web"`
	AgencyID          string      `json:"agencyId"           bson:"agencyId"`
	CreatedAt         time.Time   `json:"createdAt"          bson:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"          bson:"updatedAt"`
}
