package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ganengile/service-matching/internal/application"
	"github.com/ganengile/service-matching/internal/auth"
	"github.com/ganengile/service-matching/internal/config"
	"github.com/ganengile/service-matching/internal/database"
	"github.com/ganengile/service-matching/internal/domain/matching"
	"github.com/ganengile/service-matching/internal/domain/transit"
	matchingEvents "github.com/ganengile/service-matching/internal/events"
	"github.com/ganengile/service-matching/internal/handler"
	"github.com/ganengile/service-matching/internal/health"
	"github.com/ganengile/service-matching/internal/kafka"
	"github.com/ganengile/service-matching/internal/logger"
	"github.com/ganengile/service-matching/internal/middleware"
	"github.com/ganengile/service-matching/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-matching")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-matching",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.RouteModel{}, &repository.RequestModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	}

	// Build the transit reference network once; it is immutable afterwards.
	network := transit.SeoulNetwork()
	log.Info("transit network loaded",
		zap.Int("stations", network.Stations.Len()),
	)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, 15*time.Minute)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	routeRepo := repository.NewGormRouteRepository(db, network.Stations)
	requestRepo := repository.NewGormRequestRepository(db)

	// Initialize scorer and application service
	scorer := matching.NewTransitScorer(network, log)
	matchingService := application.NewMatchingService(
		routeRepo,
		requestRepo,
		scorer,
		network,
		kafkaProducer,
		log,
	)

	// Initialize and start delivery event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "matching-service"
	deliveryConsumer := matchingEvents.NewDeliveryEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		func(ctx context.Context, evt matchingEvents.DeliveryRequestedEvent) error {
			_, err := matchingService.MatchRequest(ctx, evt.RequestID, matching.DefaultTopMatches)
			return err
		},
		log,
	)
	defer func() { _ = deliveryConsumer.Close() }()

	go func() {
		log.Info("starting delivery event consumer")
		if err := deliveryConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("delivery event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	routeHandler := handler.NewRouteHandler(matchingService)
	requestHandler := handler.NewRequestHandler(matchingService)
	stationHandler := handler.NewStationHandler(network)
	adminHandler := handler.NewAdminHandler(matchingService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-matching")
	healthHandler.RegisterRoutes(router)

	// Register routes
	routeHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	requestHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	stationHandler.RegisterRoutes(&router.RouterGroup)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-matching...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-matching stopped")
}
