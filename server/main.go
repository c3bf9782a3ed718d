package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"yatra/api/routes"
	"yatra/internal/notifications"
	"yatra/internal/shared/config"
	"yatra/pkg/cache"
	"yatra/pkg/logger"
	"yatra/pkg/ratelimit"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Redis backs the search cache and the rate limiter; the service runs
	// without either when Redis is disabled or unreachable.
	var cacheService cache.Service
	var rateLimiter *ratelimit.RateLimiter
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewClient(cache.Config{
			Address:  cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Error("Failed to connect to Redis, continuing without cache",
				slog.Any("error", err))
		} else {
			defer redisClient.Close()
			cacheService = cache.NewService(redisClient)
			appLogger.Info("Redis connected", slog.String("addr", cfg.Redis.Addr))

			if cfg.RateLimit.Enabled {
				rateLimiter = ratelimit.NewRateLimiter(redisClient, &ratelimit.Config{
					Enabled:         cfg.RateLimit.Enabled,
					WindowDuration:  cfg.RateLimit.WindowDuration,
					DefaultRequests: cfg.RateLimit.DefaultRequests,
					SearchRequests:  cfg.RateLimit.SearchRequests,
					BookingRequests: cfg.RateLimit.BookingRequests,
					HealthRequests:  cfg.RateLimit.HealthRequests,
					WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
				})
				appLogger.Info("Rate limiter initialized",
					slog.Duration("window", cfg.RateLimit.WindowDuration),
					slog.Int("booking_requests", cfg.RateLimit.BookingRequests),
				)
			}
		}
	}

	// Booking event stream (optional)
	var publisher notifications.Publisher
	if cfg.Kafka.Enabled {
		kafkaConfig := notifications.DefaultKafkaConfig()
		kafkaConfig.Brokers = cfg.Kafka.Brokers
		kafkaConfig.Topic = cfg.Kafka.Topic

		p, err := notifications.NewKafkaPublisher(kafkaConfig)
		if err != nil {
			appLogger.Error("Failed to initialize Kafka publisher, continuing without booking events",
				slog.Any("error", err))
		} else {
			publisher = p
			defer publisher.Close()
			appLogger.Info("Kafka booking event publisher initialized",
				slog.String("topic", cfg.Kafka.Topic))
		}
	}

	// Setup router
	router := setupRouter(cfg, cacheService, publisher, rateLimiter, appLogger)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.Bool("redis_cache", cacheService != nil),
			slog.Bool("rate_limiting", rateLimiter != nil),
			slog.Bool("booking_events", publisher != nil),
			slog.String("payment_mode", cfg.Payment.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, cacheService cache.Service, publisher notifications.Publisher, rateLimiter *ratelimit.RateLimiter, appLogger *logger.Logger) *gin.Engine {
	engine := gin.New()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, cacheService, publisher, appLogger)
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
