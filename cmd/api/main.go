package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"renthub/internal/config"
	"renthub/internal/database"
	"renthub/internal/events"
	"renthub/internal/middleware"
	"renthub/internal/modules/auth"
	"renthub/internal/modules/booking"
	"renthub/internal/modules/listing"
	"renthub/internal/modules/review"
	jwtsvc "renthub/internal/pkg/jwt"
	"renthub/internal/pkg/logger"
	"renthub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connect", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("database migrate", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	searchRepo := repository.NewSearchQueryRepository(db)

	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.AccessTTL)

	// Booking events are optional: without AMQP_URL the service runs with
	// notifications disabled.
	var notifier booking.NotificationSender
	if cfg.AMQPURL != "" {
		pub, err := events.NewPublisher(cfg.AMQPURL)
		if err != nil {
			zlog.Fatal("rabbitmq connect", zap.Error(err))
		}
		defer pub.Close()
		notifier = events.NewBookingNotifier(pub, zlog)
	}

	authService := auth.NewService(userRepo, tokenRepo, jwtService, cfg.RefreshTTL)
	listingService := listing.NewService(listingRepo, searchRepo, zlog)
	bookingService := booking.NewService(bookingRepo, listingRepo, notifier)
	reviewService := review.NewService(reviewRepo, listingRepo)

	authHandler := auth.NewHandler(authService)
	listingHandler := listing.NewHandler(listingService)
	bookingHandler := booking.NewHandler(bookingService)
	reviewHandler := review.NewHandler(reviewService)

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery(zlog))
	router.Use(middleware.RequestLogger(zlog))
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	public := v1.Group("")
	public.Use(middleware.OptionalAuth(jwtService))
	{
		authHandler.RegisterPublicRoutes(public)
		listingHandler.RegisterPublicRoutes(public)
		reviewHandler.RegisterPublicRoutes(public)
	}

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		listingHandler.RegisterProtectedRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
		reviewHandler.RegisterProtectedRoutes(protected)
	}

	zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
