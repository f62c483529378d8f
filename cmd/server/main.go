// Command server runs the gatherplan HTTP API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"gatherplan/config"
	_ "gatherplan/docs"
	"gatherplan/internal/adapters/auth"
	"gatherplan/internal/adapters/cache"
	"gatherplan/internal/adapters/catalog"
	"gatherplan/internal/database"
	deliveryhttp "gatherplan/internal/delivery/http"
	"gatherplan/internal/delivery/http/controllers"
	"gatherplan/internal/delivery/http/middleware"
	"gatherplan/internal/domain"
	"gatherplan/internal/recommend"
	"gatherplan/internal/repository/postgres"
	"gatherplan/internal/services"
)

// @title gatherplan API
// @version 1.0
// @description Group event scheduling with venue recommendations.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	logger.Info("connected to postgres, migrations applied")

	venues, err := newCatalog(cfg)
	if err != nil {
		return fmt.Errorf("venue catalog: %w", err)
	}
	if err := catalog.Validate(ctx, venues); err != nil {
		return fmt.Errorf("venue catalog: %w", err)
	}

	recCache, closeCache, err := newRecommendationCache(ctx, cfg, db)
	if err != nil {
		return fmt.Errorf("recommendation cache: %w", err)
	}
	defer closeCache()

	seed := time.Now().UnixNano()
	if cfg.RandomSeed != nil {
		seed = *cfg.RandomSeed
	}
	ranker := recommend.NewRanker(venues, recommend.NewExtractor(nil, ""), recommend.RankerConfig{
		Size:   cfg.RecommendationCount,
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: logger,
	})

	eventSvc := services.NewEventService(
		postgres.NewEventRepository(db),
		postgres.NewParticipantRepository(db),
		recCache,
		ranker,
		auth.NewUUIDIssuer(),
		auth.NewBcryptHasher(cfg.TokenHashCost),
		logger,
		cfg.RequestTimeout,
	)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute)
	go sweep(ctx, limiter, time.Minute)

	mux := deliveryhttp.NewRouter(
		controllers.NewEventController(logger, eventSvc),
		controllers.NewHealthController(logger, db),
		limiter,
	)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment, "cache_backend", cfg.CacheBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newCatalog picks the external catalog, a catalog file, or the embedded seed, in that order.
func newCatalog(cfg *config.Config) (domain.VenueCatalog, error) {
	switch {
	case cfg.VenueCatalogURL != "":
		return catalog.NewHTTP(&http.Client{Timeout: 5 * time.Second}, cfg.VenueCatalogURL), nil
	case cfg.VenueCatalogFile != "":
		return catalog.LoadFile(cfg.VenueCatalogFile)
	default:
		return catalog.NewSeed()
	}
}

func newRecommendationCache(ctx context.Context, cfg *config.Config, db *sql.DB) (domain.RecommendationCache, func(), error) {
	if cfg.CacheBackend != config.CacheBackendRedis {
		return postgres.NewRecommendationRepository(db), func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return cache.NewRedis(rdb, cfg.CacheTTL), func() { _ = rdb.Close() }, nil
}

func sweep(ctx context.Context, limiter *middleware.RateLimiter, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			limiter.Sweep()
		}
	}
}
