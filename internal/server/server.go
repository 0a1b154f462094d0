package server

import (
	"fmt"
	"net/http"
	"time"

	"vibe-cart/internal/config"
	"vibe-cart/internal/database"
	custommiddleware "vibe-cart/internal/middleware"
	"vibe-cart/internal/repository"
	"vibe-cart/internal/service"
	"vibe-cart/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const metricsNamespace = "vibecart"

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers onto a chi router.
// redisClient may be nil, in which case rate limiting is off.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) *Server {
	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      NewRouter(cfg, logger, db, redisClient),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}
}

// NewRouter builds the HTTP handler tree
func NewRouter(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) http.Handler {
	router := chi.NewRouter()
	metrics := custommiddleware.NewHTTPMetrics(metricsNamespace)

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(middleware.Recoverer)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(metrics.Middleware)
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsDevelopment()))

	router.NotFound(custommiddleware.NotFoundHandler())
	router.MethodNotAllowed(custommiddleware.MethodNotAllowedHandler())

	router.Get("/health", healthHandler(db))
	router.Handle("/metrics", metrics.Handler())

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.DB())
	cartRepo := repository.NewCartRepository(db.DB())
	orderRepo := repository.NewOrderRepository(db.DB())

	// Initialize services
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(cartRepo, logger)
	checkoutService := service.NewCheckoutService(cartRepo, orderRepo, logger, service.CheckoutOptions{
		Currency:         cfg.Store.Currency,
		DefaultListLimit: cfg.Store.OrdersListLimit,
	})

	// Register routes
	router.Group(func(r chi.Router) {
		if redisClient != nil && cfg.RateLimit.Enabled {
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.Requests,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         "vibe_cart:rate_limit",
			}, logger))
		}

		transport.NewProductHandler(catalogService, logger).RegisterRoutes(r)
		transport.NewCartHandler(cartService, logger).RegisterRoutes(r)
		transport.NewCheckoutHandler(checkoutService, logger).RegisterRoutes(r)
	})

	return router
}

func healthHandler(db database.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbHealth := db.Health(r.Context())

		status, code := "ok", http.StatusOK
		if dbHealth["status"] != "up" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		custommiddleware.RespondWithJSON(w, code, map[string]any{
			"status":   status,
			"database": dbHealth,
		})
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
