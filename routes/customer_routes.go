package routes

import (
	"carrental/internal/handlers"
	"carrental/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSessionRoutes sets up the public customer login
func SetupSessionRoutes(r *gin.RouterGroup, sessionHandler *handlers.SessionHandler) {
	session := r.Group("/session")
	{
		session.POST("/login", sessionHandler.Login)
	}
}

// SetupCustomerRoutes sets up the routes of a logged in customer
func SetupCustomerRoutes(r *gin.RouterGroup, customerHandler *handlers.CustomerHandler, jwtSecret string) {
	customer := r.Group("/customer")
	customer.Use(middleware.CustomerRequired(jwtSecret))
	{
		customer.GET("/me", customerHandler.GetAccount)

		customer.POST("/bookings", customerHandler.CreateBooking)
		customer.DELETE("/bookings/:id", customerHandler.CancelBooking)

		customer.POST("/rentals", customerHandler.PickUp)
		customer.DELETE("/rentals/by-booking/:booking_id", customerHandler.ReturnCar)
	}
}
