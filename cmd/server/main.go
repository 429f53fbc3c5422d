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
	"github.com/lendhub/service-rental/internal/application"
	"github.com/lendhub/service-rental/internal/clock"
	"github.com/lendhub/service-rental/internal/config"
	"github.com/lendhub/service-rental/internal/database"
	"github.com/lendhub/service-rental/internal/events"
	"github.com/lendhub/service-rental/internal/handler"
	"github.com/lendhub/service-rental/internal/health"
	"github.com/lendhub/service-rental/internal/logger"
	"github.com/lendhub/service-rental/internal/middleware"
	"github.com/lendhub/service-rental/internal/repository"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-rental")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-rental",
		zap.String("addr", cfg.HTTPAddr),
	)

	// Connect to database
	db, err := database.Connect(cfg.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.ItemModel{},
			&repository.BookingModel{},
			&repository.CommentModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DatabaseURL(), cfg.MigrationsPath, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Kafka producer
	producer := events.NewKafkaProducer(cfg.KafkaBrokers, log)
	defer func() { _ = producer.Close() }()

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)

	// Initialize application services
	clk := clock.NewSystem()
	bookingService := application.NewBookingService(bookingRepo, itemRepo, userRepo, producer, clk, log)
	itemService := application.NewItemService(itemRepo, userRepo, commentRepo, bookingService, producer, clk, log)
	userService := application.NewUserService(userRepo, log)

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	itemHandler := handler.NewItemHandler(itemService)
	userHandler := handler.NewUserHandler(userService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())

	// Register health check routes and metrics endpoint
	healthHandler := health.NewHandler(db, "service-rental")
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup)
	itemHandler.RegisterRoutes(&router.RouterGroup)
	userHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-rental...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-rental stopped")
}
