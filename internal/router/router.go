package router

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/travel-match/backend/internal/handlers"
	"github.com/travel-match/backend/internal/matching"
	"github.com/travel-match/backend/internal/messaging"
	"github.com/travel-match/backend/internal/middleware"
	"github.com/travel-match/backend/internal/repositories"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *mongo.Database, logger *zap.Logger) error {
	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	prefRepo := repositories.NewMongoPreferenceRepository(db)
	msgRepo := repositories.NewMongoMessageRepository(db)
	notifRepo := repositories.NewMongoNotificationRepository(db)
	bookmarkRepo := repositories.NewMongoBookmarkRepository(db)

	// Unique indexes back the email and bookmark-edge constraints, so those
	// writes are single conditional inserts rather than check-then-act pairs.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := prefRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := bookmarkRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	logger.Info("mongo indexes ensured")

	// --- Core components ---
	engine := matching.NewEngine(prefRepo, userRepo, matching.DestinationPredicate{})
	conversations := messaging.NewService(msgRepo, userRepo, notifRepo, logger)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, notifRepo, logger)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	userHandler := handlers.NewUserHandler(userRepo, prefRepo, bookmarkRepo, notifRepo, msgRepo)
	userHandler.RegisterProfileRoutes(api)

	prefHandler := handlers.NewPreferenceHandler(prefRepo, notifRepo, logger)
	prefHandler.RegisterPreferenceRoutes(api)

	matchHandler := handlers.NewMatchHandler(engine)
	matchHandler.RegisterMatchRoutes(api)

	messageHandler := handlers.NewMessageHandler(conversations)
	messageHandler.RegisterMessageRoutes(api)

	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkRepo, userRepo, prefRepo)
	bookmarkHandler.RegisterBookmarkRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notifRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	logger.Info("all routes configured")
	return nil
}
