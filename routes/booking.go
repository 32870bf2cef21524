package routes

import (
	"counselconnect/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	booking := r.Group("/api/booking")
	{
		booking.POST("/check-available-slots", hb.CheckAvailableSlots)
		booking.POST("/book-appointment", hb.BookAppointment)
	}
}
