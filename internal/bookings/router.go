package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers the booking workflow routes on the /trains group.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.POST("/book", controller.BookTrain)                          // POST /trains/book
	rg.GET("/bookings", controller.ListBookings)                    // GET  /trains/bookings?email=
	rg.GET("/bookings/:bookingId", controller.GetBooking)           // GET  /trains/bookings/:bookingId
	rg.POST("/bookings/:bookingId/cancel", controller.CancelBooking) // POST /trains/bookings/:bookingId/cancel
}
