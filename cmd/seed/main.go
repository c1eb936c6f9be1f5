// Command seed loads the sample admin, agency accounts and hotels. Running it
// twice is harmless: existing users are skipped and hotels are only inserted
// into an empty collection.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/service"
	mongodb "github.com/wanderlust/hotel-api/internal/infrastructure/db/mongo"
	"github.com/wanderlust/hotel-api/internal/pkg/config"
	"github.com/wanderlust/hotel-api/pkg/logger"
)

type seedConfig struct {
	AdminPassword  string `env:"SEED_ADMIN_PASSWORD,  default=admin"`
	AgencyPassword string `env:"SEED_AGENCY_PASSWORD, default=pw"`
}

type seedUser struct {
	username string
	password string
	role     domain.Role
	status   bool
	name     domain.PersonName
	email    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg := config.MustLoad()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "seed"})

	var sc seedConfig
	if err := envconfig.Process(ctx, &sc); err != nil {
		log.Fatal().Err(err).Msg("failed to load seed configuration")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer client.Disconnect(context.Background())

	if err := mongodb.EnsureIndexes(ctx, db, cfg.Mongo.PhotoBucket); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	creds := mongodb.NewCredentialRepository(db)
	users := []seedUser{
		{username: "admin", password: sc.AdminPassword, role: domain.RoleAdmin, status: true,
			name: domain.PersonName{Firstname: "Site", Lastname: "Admin", Nickname: "admin"}, email: "admin@wanderlust.test"},
		{username: "agencyq", password: sc.AgencyPassword, role: domain.RoleAgency, status: true,
			name: domain.PersonName{Firstname: "Quest", Lastname: "Travel", Nickname: "agencyq"}, email: "agencyq@wanderlust.test"},
		{username: "kachun01", password: "abc123", role: domain.RoleAgency, status: false,
			name: domain.PersonName{Firstname: "Ka", Lastname: "Chun", Nickname: "kachun"}, email: "kachun01@wanderlust.test"},
	}
	for _, u := range users {
		if err := seedCredential(ctx, creds, hasher, u); err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("failed to seed user")
		}
		log.Info().Str("username", u.username).Stringer("role", u.role).Msg("user ready")
	}

	if err := seedHotels(ctx, mongodb.NewHotelRepository(db), "agencyq"); err != nil {
		log.Fatal().Err(err).Msg("failed to seed hotels")
	}
	log.Info().Msg("seed complete")
}

func seedCredential(ctx context.Context, creds *mongodb.CredentialRepository, hasher *service.PasswordHasher, u seedUser) error {
	hash, err := hasher.Hash(u.password)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = creds.Create(ctx, &domain.Credential{
		Username:   u.username,
		SecretHash: hash,
		Email:      u.email,
		Name:       u.name,
		Status:     u.status,
		Role:       u.role,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	return err
}

func seedHotels(ctx context.Context, repo *mongodb.HotelRepository, agency string) error {
	log := logger.Get()
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info().Int("count", len(existing)).Msg("hotels already present, skipping")
		return nil
	}

	now := time.Now().UTC()
	for _, h := range sampleHotels() {
		h.AgencyID = agency
		h.CreatedAt, h.UpdatedAt = now, now
		created, err := repo.Create(ctx, h)
		if err != nil {
			return err
		}
		log.Info().Str("hotel_id", created.ID).Str("name", created.Name).Msg("hotel created")
	}
	return nil
}

func sampleHotels() []*domain.Hotel {
	return []*domain.Hotel{
		{
			Star: 5, Name: "Harbour Grand", AccommodationType: "Hotel",
			Address: "23 Oil Street", City: "Hong Kong", Country: "China",
			Coordinates: domain.Coordinates{Latitude: 22.2887, Longitude: 114.1930},
			Description: "Harbour-front rooms with skyline views.", Email: "stay@harbourgrand.test",
			Facilities: []string{"Pool", "Spa", "Free WiFi"}, Phones: "+852 2121 2688", Ranking: 1,
			Web: "https://harbourgrand.test",
		},
		{
			Star: 4, Name: "Kowloon Garden Inn", AccommodationType: "Hotel",
			Address: "88 Nathan Road", City: "Hong Kong", Country: "China",
			Coordinates: domain.Coordinates{Latitude: 22.2988, Longitude: 114.1722},
			Description: "Steps from the Tsim Sha Tsui MTR.", Email: "hello@kowloongarden.test",
			Facilities: []string{"Gym", "Free WiFi"}, Phones: "+852 2311 1111", Ranking: 2,
			Web: "https://kowloongarden.test",
		},
		{
			Star: 3, Name: "Lantau Hostel", AccommodationType: "Hostel",
			Address: "1 Ngong Ping Road", City: "Lantau Island", Country: "China",
			Coordinates: domain.Coordinates{Latitude: 22.2540, Longitude: 113.9048},
			Description: "Dormitory beds near the Big Buddha.", Email: "beds@lantauhostel.test",
			Facilities: []string{"Shared kitchen"}, Ranking: 3,
		},
	}
}
