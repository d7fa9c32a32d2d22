package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cinecritic/review-system/internal/api"
	"github.com/cinecritic/review-system/internal/infrastructure/config"
	mongodb "github.com/cinecritic/review-system/internal/infrastructure/db/mongo"
	redisdb "github.com/cinecritic/review-system/internal/infrastructure/db/redis"
	"github.com/cinecritic/review-system/pkg/logger"
)

// @title        CineCritic Review API
// @version      1.0
// @description  Multi-role movie review API: admins manage the catalog, critics review movies.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates the unique indexes the invariants depend on:
// username on accounts, name on genres, (critic_id, movie_id) on reviews.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewMovieRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewReviewRepository(db).EnsureIndexes(ctx)
}
