package domain

import (
	"errors"
	"time"
)

var (
	ErrMessageNotFound   = errors.New("message not found")
	ErrFavouriteNotFound = errors.New("favourite not found")
	ErrFavouriteExists   = errors.New("hotel already in favourites")
)

// MessageType is the payload kind of a message.
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageFile  MessageType = "file"
)

// Message is a note sent between a member and an agency.
type Message struct {
	ID        string      `json:"id"        bson:"_id,omitempty"`
	Sender    string      `json:"sender"    bson:"sender"`
	Receiver  string      `json:"receiver"  bson:"receiver"`
	Content   string      `json:"content"   bson:"content"`
	Type      MessageType `json:"type"      bson:"type"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
}

// Favourite links a user to a hotel they saved.
type Favourite struct {
	ID        string    `json:"_id"       bson:"_id,omitempty"`
	UserID    string    `json:"userId"    bson:"userId"`
	HotelID   string    `json:"hotelId"   bson:"hotelId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
