package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	zlog "github.com/rs/zerolog/log"

	"github.com/cardly/business-card-api/internal/api"
	"github.com/cardly/business-card-api/internal/api/handler"
	"github.com/cardly/business-card-api/internal/api/metrics"
	"github.com/cardly/business-card-api/internal/core/ports"
	"github.com/cardly/business-card-api/internal/core/service"
	mongodb "github.com/cardly/business-card-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cardly/business-card-api/internal/infrastructure/db/redis"
	"github.com/cardly/business-card-api/internal/infrastructure/queue"
	"github.com/cardly/business-card-api/internal/infrastructure/storage"
	"github.com/cardly/business-card-api/internal/pkg/config"
	"github.com/cardly/business-card-api/pkg/logger"
)

const serviceName = "business-card-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		zlog.Warn().Err(err).Msg("loading .env")
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		zlog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo, profileRepo); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	checks := []handler.DependencyCheck{handler.MongoCheck(db)}

	// --- Redis (optional public profile cache) ---
	var cache ports.ProfileCache
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, public profile cache disabled")
	} else {
		defer rdb.Close()
		cache = redisdb.NewProfileCache(rdb, cfg.Redis.ProfileTTL)
		checks = append(checks, handler.RedisCheck(rdb))
	}

	// --- Photo storage ---
	photos, uploadDir, err := newPhotoStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("photo storage")
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	janitor := queue.NewJanitor(cfg.Storage.JanitorWorkers, photos, log)
	janitor.Start(janitorCtx)

	// --- Services ---
	identity := service.NewIdentityService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	profiles := service.NewProfileService(profileRepo, userRepo, photos, janitor, cache, cfg.PublicBaseURL, log)

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(reg); err != nil {
		log.Fatal().Err(err).Msg("register metrics")
	}

	e := api.NewRouter(api.RouterDeps{
		Identity:      identity,
		Profiles:      profiles,
		Checks:        checks,
		Log:           log,
		AuthRateLimit: cfg.AuthRateLimit,
		UploadDir:     uploadDir,
		Metrics:       reg,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage.Backend).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	stopJanitor()
	janitor.Wait()
	log.Info().Msg("stopped")
}

// newPhotoStore returns the configured store and, for the local backend, the
// directory to serve under /uploads.
func newPhotoStore(ctx context.Context, cfg config.StorageConfig) (ports.PhotoStore, string, error) {
	if cfg.Backend == "s3" {
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		return store, "", err
	}

	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, "", err
	}
	return store, store.Dir(), nil
}
