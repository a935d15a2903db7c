package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/artiklar/identity-api/internal/admin"
	"github.com/artiklar/identity-api/internal/auth"
	"github.com/artiklar/identity-api/internal/config"
	"github.com/artiklar/identity-api/internal/database"
	httpServer "github.com/artiklar/identity-api/internal/http"
	"github.com/artiklar/identity-api/internal/logging"
	"github.com/artiklar/identity-api/internal/profile"
	"github.com/artiklar/identity-api/internal/storage"
	"github.com/artiklar/identity-api/internal/user"
)

// @title           Identity API
// @version         1.0
// @description     Account registration, login, bearer-token verification and public profile data.

// @host      localhost:8081
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Initialize Redis connection
	redisClient, err := initRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Initialize image storage
	images, err := initImageStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize image storage: %w", err)
	}

	// Initialize repositories and cache
	userRepo := user.NewRepository(db)
	profileCache := profile.NewRedisCache(redisClient, 10*time.Minute)

	// Initialize token service
	tokenService, err := auth.NewJWTService(cfg.Auth.SecretKey, cfg.Auth.TokenDuration)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Initialize account service
	authService := auth.NewService(userRepo, tokenService, logger)

	// Initialize HTTP handlers
	authHandler := auth.NewHandler(authService, tokenService, logger)
	profileHandler := profile.NewHandler(userRepo, profileCache, images, cfg.Storage.DefaultImage, logger)
	adminHandler := admin.NewHandler(userRepo, profileCache, logger)
	authMiddleware := auth.NewMiddleware(auth.NewExtractor(tokenService))

	// Initialize router
	router := httpServer.NewRouter(cfg, authHandler, profileHandler, adminHandler, authMiddleware, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initDB initializes the database connection and returns a Bun DB instance
func initDB(cfg config.DatabaseConfig) (*bun.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	db := database.NewBunDB(sqlDB)

	// Create the schema (with its unique constraints) if missing
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// initImageStore picks the configured image backend
func initImageStore(cfg config.StorageConfig) (storage.ImageStore, error) {
	if cfg.Backend == "s3" {
		return storage.NewS3Store(context.Background(), cfg)
	}
	return storage.NewFileStore(cfg.UploadDir)
}
