package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string        `env:"PORT,            default=5000"`
	Env           string        `env:"ENV,             default=development"`
	JWTSecret     string        `env:"JWT_SECRET,      required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,       default=24h"`
	LogLevel      string        `env:"LOG_LEVEL,       default=info"`
	PublicBaseURL string        `env:"PUBLIC_BASE_URL, default=http://localhost:3001"`
	AuthRateLimit float64       `env:"AUTH_RATE_LIMIT, default=5"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=business-card-db"`
}

type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR,        default=localhost:6379"`
	Password   string        `env:"REDIS_PASSWORD"`
	DB         int           `env:"REDIS_DB,          default=0"`
	ProfileTTL time.Duration `env:"PROFILE_CACHE_TTL, default=5m"`
}

type StorageConfig struct {
	Backend        string `env:"PHOTO_STORAGE,         default=local"`
	UploadDir      string `env:"UPLOAD_DIR,            default=uploads"`
	JanitorWorkers int    `env:"PHOTO_JANITOR_WORKERS, default=2"`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION,   default=us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" || c.Storage.S3PublicURL == "" {
			return fmt.Errorf("PHOTO_STORAGE=s3 requires S3_BUCKET and S3_PUBLIC_URL")
		}
	default:
		return fmt.Errorf("unknown PHOTO_STORAGE %q (want local or s3)", c.Storage.Backend)
	}
	if c.AuthRateLimit <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT must be positive")
	}
	return nil
}
