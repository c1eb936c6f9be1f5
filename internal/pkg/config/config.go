package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string `env:"PORT,        default=3001"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	CORSOrigin string `env:"CORS_ORIGIN, default=http://localhost:3000"`
	UploadsDir string `env:"UPLOADS_DIR, default=uploads"`
	BcryptCost int    `env:"BCRYPT_COST, default=10"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Uploads UploadConfig
	Cleanup CleanupConfig
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,          default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,           default=wanderlust"`
	PhotoBucket string `env:"MONGO_PHOTO_BUCKET, default=profilePhotos"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type UploadConfig struct {
	MaxBytes       int64         `env:"UPLOAD_MAX_BYTES,       default=5242880"`
	IdempotencyTTL time.Duration `env:"UPLOAD_IDEMPOTENCY_TTL, default=24h"`
}

type CleanupConfig struct {
	Workers int `env:"CLEANUP_WORKERS, default=4"`
}

// IsDevelopment reports whether human-readable logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for process start-up.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
