package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "porchlight-backend/internal/api/http"
	"porchlight-backend/internal/config"
	"porchlight-backend/internal/logger"
	"porchlight-backend/internal/payments"
	"porchlight-backend/internal/repository/postgres"
	"porchlight-backend/internal/security"
	"porchlight-backend/internal/service"
	"porchlight-backend/internal/video"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Porchlight Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	// Initialize External Clients
	stripeProvider := payments.NewStripeProvider(payments.StripeConfig{SecretKey: cfg.Stripe.SecretKey})
	videoClient := video.NewClient(cfg.Video.APIURL, time.Duration(cfg.Video.TimeoutSeconds)*time.Second)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository)
	dealSvc := service.NewDealService(store.DealRepository)
	offerSvc := service.NewOfferService(
		store.OfferRepository,
		store.DealRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
	)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.DealRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
	)
	reviewSvc := service.NewReviewService(store.ReviewRepository, store.BookingRepository)
	billingSvc := service.NewBillingService(
		store.UserRepository,
		store.LeadChargeRepository,
		store.SettlementRepository,
		stripeProvider,
		emailSvc,
		int64(cfg.Billing.MinChargeCents),
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
	)
	videoSvc := service.NewVideoService(
		store.DealRepository,
		store.InsightRepository,
		store.UserRepository,
		videoClient,
		int32(cfg.Billing.VideoCreditCost),
	)
	insightSvc := service.NewInsightService(store.InsightRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers
	handlers := &httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		User:         httpapi.NewUserHandler(userSvc),
		Deal:         httpapi.NewDealHandler(dealSvc),
		Offer:        httpapi.NewOfferHandler(offerSvc),
		Booking:      httpapi.NewBookingHandler(bookingSvc, reviewSvc),
		Billing:      httpapi.NewBillingHandler(billingSvc),
		Video:        httpapi.NewVideoHandler(videoSvc),
		Insight:      httpapi.NewInsightHandler(insightSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
	}

	router := httpapi.NewRouter(handlers, authMiddleware)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
