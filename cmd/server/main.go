package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/shipdrop/backend/internal/analytics"
	analyticsHTTP "github.com/shipdrop/backend/internal/analytics/delivery/http"
	inventoryHTTP "github.com/shipdrop/backend/internal/inventory/delivery/http"
	inventorydomain "github.com/shipdrop/backend/internal/inventory/domain"
	inventoryRepo "github.com/shipdrop/backend/internal/inventory/repository"
	orderHTTP "github.com/shipdrop/backend/internal/order/delivery/http"
	orderdomain "github.com/shipdrop/backend/internal/order/domain"
	orderRepo "github.com/shipdrop/backend/internal/order/repository"
	"github.com/shipdrop/backend/internal/syncer"
	syncerHTTP "github.com/shipdrop/backend/internal/syncer/delivery/http"
	userHTTP "github.com/shipdrop/backend/internal/user/delivery/http"
	userdomain "github.com/shipdrop/backend/internal/user/domain"
	userRepo "github.com/shipdrop/backend/internal/user/repository"
	"github.com/shipdrop/backend/internal/wholesaler/client"
	wholesalerHTTP "github.com/shipdrop/backend/internal/wholesaler/delivery/http"
	wholesalerdomain "github.com/shipdrop/backend/internal/wholesaler/domain"
	wholesalerRepo "github.com/shipdrop/backend/internal/wholesaler/repository"
	"github.com/shipdrop/backend/kafka"
	"github.com/shipdrop/backend/pkg/database"
	"github.com/shipdrop/backend/pkg/logger"
	"github.com/shipdrop/backend/pkg/tracing"

	_ "github.com/shipdrop/backend/docs"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "shipdrop-backend")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting shipdrop backend")

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
		DBName:   getEnv("DB_NAME", "shipdrop"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Health checks ping a raw connection outside the ORM pool, so a
	// saturated pool does not read as a dead database.
	healthDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open health check connection")
	}
	defer healthDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&userdomain.User{},
		&inventorydomain.Product{},
		&wholesalerdomain.Wholesaler{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Connect to Redis for sessions and the analytics cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Kafka is optional; without brokers events are dropped
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka publisher, events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Repositories
	productRepository := inventoryRepo.NewGormProductRepositoryWithTracing(db)
	wholesalerRepository := wholesalerRepo.NewGormWholesalerRepository(db)
	orderRepository := orderRepo.NewGormOrderRepositoryWithTracing(db)
	userRepository := userRepo.NewGormUserRepository(db)
	sessionStore := userRepo.NewRedisSessionStore(redisClient)

	// Wholesaler API client
	apiTimeout := durationEnv("WHOLESALER_API_TIMEOUT", client.DefaultTimeout)
	apiClient := client.NewHTTPClient(apiTimeout)

	// Sync coordinator
	coordinator := syncer.NewCoordinator(
		wholesalerRepository,
		productRepository,
		apiClient,
		publisher,
		durationEnv("SYNC_TIMEOUT", syncer.DefaultTimeout),
	)

	lowStockThreshold := intEnv("LOW_STOCK_THRESHOLD", inventorydomain.DefaultLowStockThreshold)

	// Handlers
	userHandler := userHTTP.NewUserHandler(userRepository, sessionStore)
	inventoryHandler := inventoryHTTP.NewInventoryHandler(productRepository, lowStockThreshold)
	wholesalerHandler := wholesalerHTTP.NewWholesalerHandler(wholesalerRepository, apiClient, orderRepository)
	orderHandler := orderHTTP.NewOrderHandler(orderRepository, productRepository, wholesalerRepository, apiClient, publisher)
	syncHandler := syncerHTTP.NewSyncHandler(coordinator)
	analyticsCache := analytics.NewCache(redisClient, durationEnv("ANALYTICS_CACHE_TTL", analytics.DefaultCacheTTL))
	analyticsHandler := analyticsHTTP.NewAnalyticsHandler(orderRepository, analyticsCache)

	// Order and sync events from other instances invalidate the cache here
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		consumer, err := kafka.NewConsumer(
			strings.Split(brokers, ","),
			getEnv("KAFKA_GROUP_ID", "shipdrop-analytics"),
			[]string{kafka.TopicOrders, kafka.TopicInventory},
		)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka consumer, cache invalidation disabled")
		} else {
			invalidate := func(ctx context.Context, _ []byte) error {
				analyticsCache.InvalidatePrefix(ctx, "analytics:")
				return nil
			}
			consumer.RegisterHandler(kafka.EventTypeOrderCreated, invalidate)
			consumer.RegisterHandler(kafka.EventTypeOrderStatusChanged, invalidate)
			consumer.RegisterHandler(kafka.EventTypeInventorySynced, invalidate)

			consumerCtx, stopConsumer := context.WithCancel(context.Background())
			defer stopConsumer()
			if err := consumer.Start(consumerCtx); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
			} else {
				defer consumer.Close()
			}
		}
	}

	httpPort := getEnv("HTTP_PORT", "8080")
	startHTTPServer(healthDB, httpPort,
		userHandler, inventoryHandler, wholesalerHandler, orderHandler, syncHandler, analyticsHandler)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(
	db *sql.DB,
	port string,
	userHandler *userHTTP.UserHandler,
	inventoryHandler *inventoryHTTP.InventoryHandler,
	wholesalerHandler *wholesalerHTTP.WholesalerHandler,
	orderHandler *orderHTTP.OrderHandler,
	syncHandler *syncerHTTP.SyncHandler,
	analyticsHandler *analyticsHTTP.AnalyticsHandler,
) {
	router := mux.NewRouter()

	authenticate := userHandler.Middleware().Authenticate

	userHandler.RegisterRoutes(router)
	inventoryHandler.RegisterRoutes(router, authenticate)
	wholesalerHandler.RegisterRoutes(router, authenticate)
	orderHandler.RegisterRoutes(router, authenticate)
	syncHandler.RegisterRoutes(router, authenticate)
	analyticsHandler.RegisterRoutes(router, authenticate)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"success":false,"error":"Database unavailable"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Backend is healthy"}`))
	}).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		logger.Logger.Warn().Str("key", key).Str("value", raw).Msg("Invalid integer env value, using default")
		return defaultValue
	}
	return value
}

func durationEnv(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		logger.Logger.Warn().Str("key", key).Str("value", raw).Msg("Invalid duration env value, using default")
		return defaultValue
	}
	return value
}
