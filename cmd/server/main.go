// Command server runs the Wanderlust hotel API.
//
// @title                      Wanderlust Hotel API
// @version                    1.0
// @description                Hotel listings, member and agency accounts, profile photos, messages and favourites.
// @BasePath                   /
// @securityDefinitions.basic  BasicAuth
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wanderlust/hotel-api/internal/api"
	"github.com/wanderlust/hotel-api/internal/core/service"
	mongodb "github.com/wanderlust/hotel-api/internal/infrastructure/db/mongo"
	redisdb "github.com/wanderlust/hotel-api/internal/infrastructure/db/redis"
	"github.com/wanderlust/hotel-api/internal/infrastructure/http/handlers"
	"github.com/wanderlust/hotel-api/internal/infrastructure/queue"
	"github.com/wanderlust/hotel-api/internal/pkg/config"
	"github.com/wanderlust/hotel-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "hotel-api",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db, cfg.Mongo.PhotoBucket); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Storage ---
	creds := mongodb.NewCredentialRepository(db)
	hotelRepo := mongodb.NewHotelRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	favouriteRepo := mongodb.NewFavouriteRepository(db)
	bucket, err := mongodb.NewAssetBucket(db, cfg.Mongo.PhotoBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open photo bucket")
	}
	dedup := redisdb.NewUploadDedup(rdb, cfg.Uploads.IdempotencyTTL)

	// --- Services ---
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	assets := service.NewAssetService(bucket, creds, dedup, cfg.Uploads.MaxBytes, log)

	cleanup := queue.NewDispatcher(cfg.Cleanup.Workers, assets, log)
	// Purges must outlive the signal so Shutdown can drain them.
	cleanup.Start(context.WithoutCancel(ctx))

	router := api.NewRouter(api.Deps{
		Log:            log,
		CORSOrigin:     cfg.CORSOrigin,
		UploadsDir:     cfg.UploadsDir,
		MaxUploadBytes: cfg.Uploads.MaxBytes,
		Basic:          service.NewBasicAuthenticator(creds, hasher, log),
		Token:          service.NewTokenAuthenticator(creds, log),
		Auth:           service.NewAuthService(creds, log),
		Accounts:       service.NewAccountService(creds, favouriteRepo, hasher, cleanup, log),
		Photos:         assets,
		Hotels:         service.NewHotelService(hotelRepo, log),
		Messages:       service.NewMessageService(messageRepo, creds, log),
		Favourites:     service.NewFavouriteService(favouriteRepo, hotelRepo, log),
		Readiness: []handlers.Dependency{
			{Name: "mongo", Ping: mongodb.Pinger(mongoClient)},
			{Name: "redis", Ping: redisdb.Pinger(rdb)},
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("received interruption signal, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if err := cleanup.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("asset cleanup did not drain before shutdown")
	}
	log.Info().Msg("shutdown complete")
}
