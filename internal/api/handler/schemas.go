package handler

import (
	"time"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

// ── Accounts ─────────────────────────────────────────────────────────────────

type nameRequest struct {
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Middlename string `json:"middlename,omitempty"`
	Nickname   string `json:"nickname"`
}

func (n nameRequest) toDomain() domain.PersonName {
	return domain.PersonName{
		Firstname:  n.Firstname,
		Lastname:   n.Lastname,
		Middlename: n.Middlename,
		Nickname:   n.Nickname,
	}
}

// registerRequest is the body of every account creation route. Role is
// honoured only on the admin route.
type registerRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Email    string      `json:"email" validate:"omitempty,email"`
	Phone    string      `json:"phone"`
	Name     nameRequest `json:"name"`
	Role     *int        `json:"role,omitempty" validate:"omitempty,oneof=0 1 2"`
}

func (r registerRequest) toInput(role domain.Role) ports.RegisterInput {
	return ports.RegisterInput{
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
		Phone:    r.Phone,
		Name:     r.Name.toDomain(),
		Role:     role,
	}
}

// updateUserRequest is a partial profile update. Username selects the target
// on the body-addressed routes; it is never written.
type updateUserRequest struct {
	Username string       `json:"username,omitempty"`
	Password *string      `json:"password,omitempty"`
	Email    *string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string      `json:"phone,omitempty"`
	Name     *nameRequest `json:"name,omitempty"`
	Status   *bool        `json:"status,omitempty"`
	Role     *int         `json:"role,omitempty" validate:"omitempty,oneof=0 1 2"`
}

func (r updateUserRequest) toInput() ports.UpdateUserInput {
	in := ports.UpdateUserInput{
		Password: r.Password,
		Email:    r.Email,
		Phone:    r.Phone,
		Status:   r.Status,
	}
	if r.Name != nil {
		name := r.Name.toDomain()
		in.Name = &name
	}
	if r.Role != nil {
		in.Role = domain.RolePtr(domain.Role(*r.Role))
	}
	return in
}

type deleteUserRequest struct {
	Username string `json:"username,omitempty"`
}

type createdResponse struct {
	Msg string `json:"msg"`
	ID  string `json:"id"`
}

type msgResponse struct {
	Msg string `json:"msg"`
}

type userListResponse struct {
	Success bool                 `json:"success"`
	Count   int                  `json:"count"`
	Users   []*domain.Credential `json:"users"`
}

type loginResponse struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// ── Photos ───────────────────────────────────────────────────────────────────

type uploadResponse struct {
	Msg     string `json:"msg"`
	PhotoID string `json:"photoId"`
	URL     string `json:"url"`
}

type photoItem struct {
	ID         string    `json:"_id"`
	Filename   string    `json:"filename"`
	UploadDate time.Time `json:"uploadDate"`
	URL        string    `json:"url"`
}

// ── Hotels ───────────────────────────────────────────────────────────────────

type coordinatesRequest struct {
	Latitude  float64 `json:"latitude"  validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type hotelFields struct {
	Star              int                `json:"star"    validate:"gte=0,lte=5"`
	Name              string             `json:"name"`
	AccommodationType string             `json:"accommodationType"`
	Address           string             `json:"address"`
	City              string             `json:"city"`
	Coordinates       coordinatesRequest `json:"coordinates"`
	Country           string             `json:"country"`
	Description       string             `json:"description"`
	Email             string             `json:"email"   validate:"omitempty,email"`
	Facilities        []string           `json:"facilities"`
	LastUpdate        string             `json:"lastUpdate,omitempty"`
	Phones            string             `json:"phones,omitempty"`
	Ranking           int                `json:"ranking" validate:"gte=0"`
	Web               string             `json:"web"`
}

// hotelRequest accepts the hotel either at the top level or wrapped as
// {"hotel": {...}}.
type hotelRequest struct {
	hotelFields
	Hotel *hotelFields `json:"hotel,omitempty"`
}

func (r hotelRequest) toInput() ports.HotelInput {
	f := r.hotelFields
	if r.Hotel != nil {
		f = *r.Hotel
	}
	return ports.HotelInput{
		Star:              f.Star,
		Name:              f.Name,
		AccommodationType: f.AccommodationType,
		Address:           f.Address,
		City:              f.City,
		Coordinates:       domain.Coordinates{Latitude: f.Coordinates.Latitude, Longitude: f.Coordinates.Longitude},
		Country:           f.Country,
		Description:       f.Description,
		Email:             f.Email,
		Facilities:        f.Facilities,
		LastUpdate:        f.LastUpdate,
		Phones:            f.Phones,
		Ranking:           f.Ranking,
		Web:               f.Web,
	}
}

type hotelListResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Hotels  []*domain.Hotel `json:"hotels"`
}

type hotelResponse struct {
	Success bool          `json:"success"`
	Msg     string        `json:"msg,omitempty"`
	Hotel   *domain.Hotel `json:"hotel"`
}

// ── Messages & favourites ────────────────────────────────────────────────────

type sendMessageRequest struct {
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
	Type     string `json:"type,omitempty" validate:"omitempty,oneof=text image file"`
}

type deleteMessageRequest struct {
	MessageID string `json:"messageId"`
}

type messageListResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Messages []*domain.Message `json:"messages"`
}

type messageResponse struct {
	Success bool            `json:"success"`
	Message *domain.Message `json:"message"`
}

type favouriteRequest struct {
	HotelID string `json:"hotelId"`
}

type favouriteListResponse struct {
	Success    bool                `json:"success"`
	Count      int                 `json:"count"`
	Favourites []*domain.Favourite `json:"favourites"`
}

type favouriteResponse struct {
	Success   bool              `json:"success"`
	Favourite *domain.Favourite `json:"favourite"`
}
