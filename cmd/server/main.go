package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/contesthub/backend/internal/api"
	"github.com/contesthub/backend/internal/infrastructure/config"
	mongodb "github.com/contesthub/backend/internal/infrastructure/db/mongo"
	redisdb "github.com/contesthub/backend/internal/infrastructure/db/redis"
	"github.com/contesthub/backend/internal/infrastructure/payment"
	"github.com/contesthub/backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Store connectivity failures at startup are logged, not fatal: the
	// drivers connect lazily, the readiness probe reports the degraded
	// state, and traffic is served once the stores come up.
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if client == nil {
		log.Fatal().Err(err).Msg("invalid mongo configuration")
	}
	if err != nil {
		log.Error().Err(err).Msg("mongo unreachable at startup, continuing degraded")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Error().Err(err).Msg("redis unreachable at startup, continuing degraded")
	}
	defer rdb.Close()

	ensureIndexes(ctx, db, log)

	intents := payment.NewStripeClient(cfg.StripeSecretKey)

	e := api.NewRouter(db, rdb, intents, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes bootstraps all collection indexes. Failures are logged but
// non-fatal: the process serves traffic even when index creation is racing
// another replica.
func ensureIndexes(ctx context.Context, db *mongo.Database, log zerolog.Logger) {
	indexed := map[string]interface{ EnsureIndexes(context.Context) error }{
		"users":       mongodb.NewUserRepository(db),
		"contests":    mongodb.NewContestRepository(db),
		"payments":    mongodb.NewPaymentRepository(db),
		"submissions": mongodb.NewSubmissionRepository(db),
	}
	for name, repo := range indexed {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}
}
