package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vibe-cart/internal/config"
	"vibe-cart/internal/database"
	"vibe-cart/internal/domain"
	"vibe-cart/internal/logger"
	"vibe-cart/internal/repository"
	"vibe-cart/internal/server"
	"vibe-cart/migrations"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")
	done <- true
}

// connectRedis returns nil when rate limiting is off or Redis is unreachable
func connectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) *redis.Client {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, rate limiting disabled", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
		client.Close()
		return nil
	}

	log.Info("Rate limiting enabled",
		zap.String("addr", cfg.Redis.Addr()),
		zap.Int("requests", cfg.RateLimit.Requests),
		zap.Duration("window", cfg.RateLimit.Window),
	)
	return client
}

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		log = logger.NewWithDefaults()
		log.Warn("Falling back to default logger", zap.Error(err))
	}
	defer log.Sync()

	log.Info("Starting vibe-cart API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("currency", cfg.Store.Currency.String()),
	)

	// Initialize database
	dbService, err := database.New(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	log.Info("Database health check", zap.Any("health", dbService.Health(ctx)))

	// Run migrations
	if err := database.RunMigrations(ctx, dbService.DB(), dbService.Driver(), migrations.FS, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	if version, err := database.MigrationVersion(ctx, dbService.DB(), dbService.Driver(), migrations.FS); err == nil {
		log.Info("Schema ready", zap.Int64("version", version))
	}

	productRepo := repository.NewProductRepository(dbService.DB())
	if cfg.Store.SeedOnEmptyStart {
		seeded, err := productRepo.SeedIfEmpty(ctx, domain.SampleProducts())
		if err != nil {
			log.Fatal("Failed to seed products", zap.Error(err))
		}
		if seeded {
			log.Info("Seeded sample products", zap.Int("count", len(domain.SampleProducts())))
		}
	}
	if count, err := productRepo.Count(ctx); err == nil {
		log.Info("Catalog ready", zap.Int64("products", count))
	}

	// Create server
	srv := server.NewServer(cfg, log, dbService, connectRedis(ctx, cfg, log))

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}
