package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/ridwan89/swiftbus-booking/internal/handler"
	"github.com/ridwan89/swiftbus-booking/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	CatalogHandler  *handler.CatalogHandler
	BookingHandler  *handler.BookingHandler
	TrackingHandler *handler.TrackingHandler
	PaymentHandler  *handler.PaymentHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
	AllowedOrigins  string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(deps.AllowedOrigins))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Trip catalog and manifest.
		trips := v1.Group("/trips")
		{
			trips.GET("", deps.CatalogHandler.ListTrips)
			trips.GET("/:id", deps.CatalogHandler.GetTrip)
			trips.GET("/:id/manifest", deps.CatalogHandler.GetManifest)
		}

		v1.POST("/quotes", deps.BookingHandler.Quote)

		bookings := v1.Group("/bookings")
		{
			bookings.POST("", deps.BookingHandler.CreateBooking)
			bookings.GET("", deps.BookingHandler.GetAll)
			bookings.GET("/:code", deps.BookingHandler.GetBooking)

			bookings.GET("/:code/tracking", deps.TrackingHandler.GetTracking)
			bookings.POST("/:code/advance", deps.TrackingHandler.Advance)
			bookings.POST("/:code/playback", deps.TrackingHandler.StartPlayback)
			bookings.DELETE("/:code/playback", deps.TrackingHandler.StopPlayback)

			bookings.POST("/:code/payment", deps.PaymentHandler.ProcessPayment)
			bookings.GET("/:code/receipt", deps.PaymentHandler.GetReceipt)
			bookings.GET("/:code/ticket.pdf", deps.PaymentHandler.GetTicketPDF)
		}
	}

	return router
}
