package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	itemDelivery "github.com/geotk/marketplace/internal/item/delivery/http"
	itemRepo "github.com/geotk/marketplace/internal/item/repository"
	reviewDelivery "github.com/geotk/marketplace/internal/review/delivery/http"
	reviewRepo "github.com/geotk/marketplace/internal/review/repository"
	userDelivery "github.com/geotk/marketplace/internal/user/delivery/http"
	userRepo "github.com/geotk/marketplace/internal/user/repository"
	"github.com/geotk/marketplace/kafka"
	"github.com/geotk/marketplace/pkg/cache"
	"github.com/geotk/marketplace/pkg/database"
	"github.com/geotk/marketplace/pkg/logger"
	"github.com/geotk/marketplace/pkg/storage"
	"github.com/geotk/marketplace/pkg/tracing"
)

func main() {
	// Load .env if present; real deployments use the environment directly
	_ = godotenv.Load()

	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "marketplace")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting marketplace service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "marketplacedb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Initialize repositories and run migrations
	users := userRepo.NewGormUserRepository(db)
	items := itemRepo.NewGormItemRepositoryWithTracing(db)
	categories := itemRepo.NewGormCategoryRepository(db)
	images := itemRepo.NewGormImageRepository(db)
	reviews := reviewRepo.NewGormReviewRepository(db)

	for _, migrate := range []func() error{users.AutoMigrate, items.AutoMigrate, reviews.AutoMigrate} {
		if err := migrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Image blob storage
	blobs, err := storage.NewLocalStorage(getEnv("UPLOAD_DIR", "./uploads"))
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize image storage")
	}

	// Optional Redis response cache
	redisClient := cache.NewRedisClient(getEnv("REDIS_ADDR", ""))

	// Optional Kafka event publisher
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, domain events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Seed demo data on demand
	if getEnv("SEED_DATA", "false") == "true" {
		if err := seedData(db, blobs); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to seed demo data")
		}
	}

	// Initialize handlers (manual DI)
	userHandler := userDelivery.NewUserHandler(users)
	itemHandler := itemDelivery.NewItemHandler(items, categories, images, users, blobs, publisher, redisClient)
	reviewHandler := reviewDelivery.NewReviewHandler(reviews, users, publisher)

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8080")
	go startHTTPServer(userHandler, itemHandler, reviewHandler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(
	userHandler *userDelivery.UserHandler,
	itemHandler *itemDelivery.ItemHandler,
	reviewHandler *reviewDelivery.ReviewHandler,
	db *sql.DB,
	port string,
) {
	// Setup router
	router := mux.NewRouter()

	// Register routes
	userHandler.RegisterRoutes(router)
	itemHandler.RegisterRoutes(router)
	reviewHandler.RegisterRoutes(router)

	// Health check endpoint
	itemDelivery.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/index.html").
		Msg("HTTP server started")

	handler := otelhttp.NewHandler(c.Handler(router), "marketplace-http")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
