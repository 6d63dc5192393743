package routes

import (
	"carrental/internal/handlers"
	"carrental/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up the company administration routes
func SetupAdminRoutes(r *gin.RouterGroup, adminHandler *handlers.AdminHandler, statisticsHandler *handlers.StatisticsHandler, adminKey string) {
	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired(adminKey))
	{
		// Company lifecycle
		admin.POST("/reset", adminHandler.ResetCompany)
		admin.PUT("/today", adminHandler.SetToday)
		admin.GET("/overview", adminHandler.GetOverview)
		admin.GET("/statistics", statisticsHandler.GetStatistics)

		// Customers
		admin.GET("/customers", adminHandler.ListCustomers)
		admin.POST("/customers", adminHandler.CreateCustomer)
		admin.DELETE("/customers/:id", adminHandler.DeleteCustomer)

		// Categories
		admin.GET("/categories", adminHandler.ListCategories)
		admin.POST("/categories", adminHandler.CreateCategory)
		admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

		// Cars
		admin.GET("/cars", adminHandler.ListCars)
		admin.POST("/cars", adminHandler.CreateCar)
		admin.DELETE("/cars/:id", adminHandler.DeleteCar)

		// Read-only views
		admin.GET("/bookings", adminHandler.ListBookings)
		admin.GET("/rentals", adminHandler.ListRentals)
	}
}
