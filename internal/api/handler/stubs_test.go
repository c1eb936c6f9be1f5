package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/hotel-api/internal/api/middleware"
	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

var (
	adminP  = domain.Principal{Identity: "admin", Role: domain.RoleAdmin, Status: true}
	agencyP = domain.Principal{Identity: "kachun01", Role: domain.RoleAgency}
	memberP = domain.Principal{Identity: "alice", Role: domain.RoleMember, Status: true}
)

// newContext builds an echo context with the validator installed and, when p
// is non-nil, the principal set as the auth middleware would.
func newContext(req *http.Request, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		c.Set(middleware.PrincipalKey, *p)
	}
	return c, rec
}

// jsonRequest builds a request carrying body as JSON.
func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

type stubAuthService struct {
	issueFn  func(ctx context.Context, p domain.Principal) (string, error)
	verifyFn func(p domain.Principal) error
}

func (s *stubAuthService) IssueToken(ctx context.Context, p domain.Principal) (string, error) {
	return s.issueFn(ctx, p)
}

func (s *stubAuthService) VerifyAgency(p domain.Principal) error {
	if s.verifyFn == nil {
		return nil
	}
	return s.verifyFn(p)
}

type stubAccountService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Credential, error)
	createFn   func(ctx context.Context, actor domain.Principal, in ports.RegisterInput) (*domain.Credential, error)
	updateFn   func(ctx context.Context, actor domain.Principal, target string, scope *domain.Role, in ports.UpdateUserInput) error
	deleteFn   func(ctx context.Context, actor domain.Principal, target string, scope *domain.Role) error
	listFn     func(ctx context.Context, actor domain.Principal) ([]*domain.Credential, error)
}

func (s *stubAccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Credential, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAccountService) Create(ctx context.Context, actor domain.Principal, in ports.RegisterInput) (*domain.Credential, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubAccountService) Update(ctx context.Context, actor domain.Principal, target string, scope *domain.Role, in ports.UpdateUserInput) error {
	return s.updateFn(ctx, actor, target, scope, in)
}

func (s *stubAccountService) Delete(ctx context.Context, actor domain.Principal, target string, scope *domain.Role) error {
	return s.deleteFn(ctx, actor, target, scope)
}

func (s *stubAccountService) List(ctx context.Context, actor domain.Principal) ([]*domain.Credential, error) {
	return s.listFn(ctx, actor)
}

func (s *stubAccountService) ListPublic(ctx context.Context) ([]*domain.Credential, error) {
	return s.listFn(ctx, domain.Principal{})
}

type stubPhotoService struct {
	uploadFn   func(ctx context.Context, actor domain.Principal, in ports.PhotoUploadInput) (*domain.AssetRecord, error)
	profileFn  func(ctx context.Context, username string, scope *domain.Role) (*domain.AssetDownload, error)
	downloadFn func(ctx context.Context, id string) (*domain.AssetDownload, error)
	listFn     func(ctx context.Context, actor domain.Principal) ([]*domain.AssetRecord, error)
}

func (s *stubPhotoService) UploadProfilePhoto(ctx context.Context, actor domain.Principal, in ports.PhotoUploadInput) (*domain.AssetRecord, error) {
	return s.uploadFn(ctx, actor, in)
}

func (s *stubPhotoService) ProfilePhoto(ctx context.Context, username string, scope *domain.Role) (*domain.AssetDownload, error) {
	return s.profileFn(ctx, username, scope)
}

func (s *stubPhotoService) Download(ctx context.Context, id string) (*domain.AssetDownload, error) {
	return s.downloadFn(ctx, id)
}

func (s *stubPhotoService) ListOwn(ctx context.Context, actor domain.Principal) ([]*domain.AssetRecord, error) {
	return s.listFn(ctx, actor)
}

type stubHotelService struct {
	hotels   map[string]*domain.Hotel
	lastIn   ports.HotelInput
	createFn func(actor domain.Principal, in ports.HotelInput) (*domain.Hotel, error)
}

func (s *stubHotelService) List(context.Context) ([]*domain.Hotel, error) {
	out := make([]*domain.Hotel, 0, len(s.hotels))
	for _, h := range s.hotels {
		out = append(out, h)
	}
	return out, nil
}

func (s *stubHotelService) Get(_ context.Context, id string) (*domain.Hotel, error) {
	if h, ok := s.hotels[id]; ok {
		return h, nil
	}
	return nil, domain.ErrHotelNotFound
}

func (s *stubHotelService) Create(_ context.Context, actor domain.Principal, in ports.HotelInput) (*domain.Hotel, error) {
	s.lastIn = in
	return s.createFn(actor, in)
}

func (s *stubHotelService) Update(_ context.Context, _ domain.Principal, id string, in ports.HotelInput) (*domain.Hotel, error) {
	s.lastIn = in
	h, ok := s.hotels[id]
	if !ok {
		return nil, domain.ErrHotelNotFound
	}
	h.Name = in.Name
	return h, nil
}

func (s *stubHotelService) Delete(_ context.Context, _ domain.Principal, id string) (*domain.Hotel, error) {
	h, ok := s.hotels[id]
	if !ok {
		return nil, domain.ErrHotelNotFound
	}
	delete(s.hotels, id)
	return h, nil
}
