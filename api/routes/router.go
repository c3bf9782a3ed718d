package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yatra/internal/bookings"
	"yatra/internal/confirmation"
	"yatra/internal/notifications"
	"yatra/internal/payments"
	"yatra/internal/shared/config"
	"yatra/internal/trains"
	"yatra/pkg/cache"
	"yatra/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	cacheService cache.Service           // nil when Redis is disabled
	publisher    notifications.Publisher // nil when Kafka is disabled
	log          *logger.Logger

	trainService trains.Service // shared with the booking workflow
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, cacheService cache.Service, publisher notifications.Publisher, log *logger.Logger) *Router {
	return &Router{
		config:       cfg,
		cacheService: cacheService,
		publisher:    publisher,
		log:          log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	// Train routes must be set up first: the booking workflow depends on the
	// train service for its availability checks.
	trainsGroup := engine.Group("/trains")
	{
		r.setupTrainRoutes(trainsGroup)
		r.setupBookingRoutes(trainsGroup)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if r.cacheService != nil {
			if err := r.cacheService.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"error":     err.Error(),
					"timestamp": time.Now(),
					"service":   "yatra-backend",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "yatra-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "operational",
			"timestamp": time.Now(),
		})
	})
}

// setupTrainRoutes configures search and catalog routes
func (r *Router) setupTrainRoutes(rg *gin.RouterGroup) {
	catalog := trains.NewMemoryCatalog()
	r.trainService = trains.NewService(catalog, r.cacheService,
		r.config.Redis.SearchCacheTTL, r.config.SearchTimeout)
	trainController := trains.NewController(r.trainService)

	trains.SetupTrainRoutes(rg, trainController)
}

// setupBookingRoutes configures the booking workflow routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	gateway := payments.NewFromConfig(r.config.Payment)
	confirmer := confirmation.NewFromConfig(r.config.Confirmation)

	timeouts := bookings.Timeouts{
		Availability: r.config.SearchTimeout,
		Payment:      r.config.Payment.Timeout,
		Confirmation: r.config.Confirmation.Timeout,
	}

	bookingRepo := bookings.NewMemoryRepository()
	bookingService := bookings.NewService(bookingRepo, r.trainService, gateway, confirmer,
		r.publisher, r.config.Payment.Currency, timeouts, r.log)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}
