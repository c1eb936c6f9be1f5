package api

import (
	"fmt"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/wanderlust/hotel-api/docs"
	"github.com/wanderlust/hotel-api/internal/api/handler"
	"github.com/wanderlust/hotel-api/internal/api/middleware"
	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
	"github.com/wanderlust/hotel-api/internal/infrastructure/http/handlers"
)

// multipartOverhead is the slack allowed on top of the photo size limit for
// the multipart envelope.
const multipartOverhead = 1 << 20

// Deps is everything the router needs. Services are built once in
// cmd/server and shared by every request.
type Deps struct {
	Log            zerolog.Logger
	CORSOrigin     string
	UploadsDir     string
	MaxUploadBytes int64

	// Registerer and Gatherer back the HTTP metrics and /metrics. They
	// default to the process-wide Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Basic      ports.Authenticator
	Token      ports.Authenticator
	Auth       ports.AuthService
	Accounts   ports.AccountService
	Photos     ports.PhotoService
	Hotels     ports.HotelService
	Messages   ports.MessageService
	Favourites ports.FavouriteService

	Readiness []handlers.Dependency
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{d.CORSOrigin},
		AllowCredentials: true,
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, handler.HeaderIdempotencyKey,
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "wanderlust",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper:    skipOperational,
	}))

	// --- Operational endpoints (no auth required) ---
	health := handlers.NewHealthHandler()
	ready := handlers.NewReadinessHandler(d.Readiness...)
	e.GET("/health", health.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", ready.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.UploadsDir != "" {
		e.Static("/uploads", d.UploadsDir)
	}

	basic := middleware.BasicAuth(d.Basic)
	token := middleware.TokenAuth(d.Token)
	uploadLimit := echomiddleware.BodyLimit(bodyLimit(d.MaxUploadBytes))

	auth := handler.NewAuthHandler(d.Auth)
	accounts := handler.NewAccountHandler(d.Accounts)
	photos := handler.NewPhotoHandler(d.Photos, d.Log)
	hotels := handler.NewHotelHandler(d.Hotels)
	messages := handler.NewMessageHandler(d.Messages)
	favourites := handler.NewFavouriteHandler(d.Favourites)

	v1 := e.Group("/api/v1")

	// --- Hotels: public reads, token-authenticated agency writes ---
	h := v1.Group("/hotel")
	h.GET("", hotels.List)
	h.GET("/:id", hotels.Get)
	h.POST("", hotels.Create, token)
	h.PUT("/:id", hotels.Update, token)
	h.DELETE("/:id", hotels.Delete, token)

	// --- Members ---
	m := v1.Group("/member")
	m.POST("", accounts.RegisterMember)
	m.GET("/auth", auth.MemberLogin, basic)
	m.POST("/upload-photo", photos.Upload, uploadLimit, basic)
	m.PUT("", accounts.UpdateSelf(domain.RoleMember), basic)
	m.DELETE("", accounts.DeleteSelf(domain.RoleMember), basic)
	m.GET("/:username", photos.MemberPhoto)

	// --- Agencies ---
	a := v1.Group("/agency")
	a.POST("", accounts.CreateAgency, basic)
	a.PUT("", accounts.UpdateSelf(domain.RoleAgency), basic)
	a.GET("/auth", auth.AgencyLogin, basic)
	a.POST("/upload-photo", photos.Upload, uploadLimit, basic)
	a.GET("/photos", photos.ListOwn, basic)
	a.GET("/photos/:id", photos.ByID)
	a.GET("/:username", photos.UserPhoto)

	// --- Messages & favourites (session token) ---
	msg := v1.Group("/message", token)
	msg.GET("", messages.List)
	msg.POST("", messages.Send)
	msg.DELETE("", messages.Delete)

	fav := v1.Group("/favourlist", token)
	fav.GET("", favourites.List)
	fav.POST("", favourites.Add)
	fav.DELETE("", favourites.Remove)

	v1.GET("/user", accounts.PublicList)

	// --- Administration ---
	adm := e.Group("/admin", basic)
	adm.GET("/users", accounts.AdminList)
	adm.POST("/users", accounts.AdminCreate)
	adm.PUT("/users/:username", accounts.AdminUpdate)
	adm.DELETE("/users/:username", accounts.AdminDelete)

	return e
}

func skipOperational(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

// bodyLimit renders the upload body cap in the unit syntax BodyLimit expects.
func bodyLimit(maxBytes int64) string {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return fmt.Sprintf("%dK", (maxBytes+multipartOverhead)/1024)
}
