package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"artmarket/internal/cart"
	"artmarket/internal/catalog"
	"artmarket/internal/config"
	custommiddleware "artmarket/internal/middleware"
	"artmarket/internal/repository"
	"artmarket/internal/service"
	"artmarket/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          *sql.DB
	redisClient *redis.Client
	provider    *catalog.Provider
	stopRefresh context.CancelFunc
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         "ratelimit",
	}, logger))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	artworkRepo := repository.NewArtworkRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Catalog snapshot provider: load once at startup, then refresh in
	// the background until shutdown
	provider := catalog.NewProvider(artworkRepo, categoryRepo, logger)
	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	if err := provider.Refresh(refreshCtx); err != nil {
		logger.Error("Initial catalog snapshot load failed", zap.Error(err))
	}
	go provider.Run(refreshCtx, cfg.Catalog.RefreshInterval)

	// Cart persistence
	cartStore := cart.NewRedisStore(redisClient, cfg.Cart.TTL, logger)

	// Initialize services
	userService := service.NewUserService(userRepo, refreshTokenRepo, cfg.JWT)
	catalogService := service.NewCatalogService(provider, artworkRepo, logger)
	cartService := service.NewCartService(cartStore, artworkRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartService, logger)
	artworkService := service.NewArtworkService(artworkRepo, categoryRepo, provider, logger)

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService, logger)
	catalogHandler := transport.NewCatalogHandler(catalogService, categoryRepo, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	artworkHandler := transport.NewArtworkHandler(artworkService, userService, logger)
	artistHandler := transport.NewArtistHandler(artistRepo, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)

	// Register routes
	userHandler.RegisterRoutes(router, authMiddleware)
	catalogHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)
	cartHandler.RegisterRoutes(router, authMiddleware)
	orderHandler.RegisterRoutes(router, authMiddleware)
	artworkHandler.RegisterRoutes(router, authMiddleware)
	artistHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
		provider:    provider,
		stopRefresh: stopRefresh,
	}

	return server
}

// RegisterHealthRoute adds the health endpoint backed by the given stats
// function.
func (s *Server) RegisterHealthRoute(stats func() map[string]string) {
	router, ok := s.Handler.(chi.Router)
	if !ok {
		return
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"database": stats(),
		})
	})
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Stop the background catalog refresh
	s.stopRefresh()

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	// Close Redis connection
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
