package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/fullstacklabs/identity-api/docs"
	"github.com/fullstacklabs/identity-api/internal/api"
	"github.com/fullstacklabs/identity-api/internal/core/ports"
	"github.com/fullstacklabs/identity-api/internal/core/service"
	"github.com/fullstacklabs/identity-api/internal/infrastructure/db/memory"
	mongodb "github.com/fullstacklabs/identity-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fullstacklabs/identity-api/internal/infrastructure/db/redis"
	"github.com/fullstacklabs/identity-api/internal/infrastructure/queue"
	"github.com/fullstacklabs/identity-api/internal/pkg/config"
	"github.com/fullstacklabs/identity-api/internal/pkg/password"
	"github.com/fullstacklabs/identity-api/internal/pkg/token"
	"github.com/fullstacklabs/identity-api/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 15 * time.Second
	auditWorkers    = 4
)

// @title           Identity API
// @version         1.0
// @description     Token-based authentication service with role-gated resources.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().
		Str("env", cfg.Env).
		Str("storage", cfg.Storage).
		Msg("starting identity-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	// --- Storage backend ---
	var (
		users       ports.UserRepository
		books       ports.BookRepository
		auditStore  ports.AuditRepository
		mongoDB     *mongo.Database
		mongoClient *mongo.Client
	)

	switch cfg.Storage {
	case "memory":
		log.Warn().Msg("using in-memory storage; all data is lost on restart")
		users = memory.NewUserRepository()
		books = memory.NewBookRepository()
		auditStore = memory.NewAuditRepository()
	default:
		client, db, err := mongodb.Connect(startupCtx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		mongoClient = client
		mongoDB = db

		userRepo := mongodb.NewUserRepository(db)
		if err := userRepo.EnsureIndexes(startupCtx); err != nil {
			log.Fatal().Err(err).Msg("failed to create MongoDB indexes")
		}
		users = userRepo
		books = mongodb.NewBookRepository(db)
		auditStore = mongodb.NewAuditRepository(db)
	}

	// --- Login throttle (optional, backed by Redis) ---
	var (
		throttle    ports.LoginThrottle
		redisClient *redis.Client
	)
	rdb, err := redisdb.Connect(startupCtx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		// Throttling is a hardening layer, not a correctness requirement:
		// logins stay available when Redis is down.
		log.Warn().Err(err).Msg("redis unavailable; login throttling disabled")
	} else {
		redisClient = rdb
		throttle = redisdb.NewLoginThrottle(rdb, cfg.Auth.MaxLoginAttempts, cfg.Auth.LockWindow)
	}

	// --- Audit trail ---
	dispatcher := queue.NewDispatcher(auditWorkers, auditStore, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	codec := token.NewCodec([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)

	authService := service.NewAuthService(users, hasher, codec, throttle, dispatcher, log)
	bookService := service.NewBookService(books, log)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		AuthService: authService,
		BookService: bookService,
		Users:       users,
		Codec:       codec,
		Logger:      log,
		Mongo:       mongoDB,
		Redis:       redisClient,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("listening")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}
	log.Info().Msg("shutdown complete")
}
