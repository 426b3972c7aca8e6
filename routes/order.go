package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/threadly/threadly-api/controllers/order"
	"github.com/threadly/threadly-api/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers all "/orders/*" endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// websocket feed for the admin dashboard
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		user := orders.Group("")
		user.Use(middleware.RequireUser(db))
		{
			user.POST("/create", orderControllers.CreateOrderHandler(db))
			user.GET("/my-orders", orderControllers.GetMyOrdersHandler(db))
			user.GET("/:id", orderControllers.GetOrderByIDHandler(db))
		}

		admin := orders.Group("/admin")
		admin.Use(middleware.RequireAdmin(db))
		{
			admin.GET("/all", orderControllers.GetAllOrdersHandler(db))
			admin.GET("/stats", orderControllers.GetOrderStatsHandler(db))
			admin.PUT("/:id/status", orderControllers.UpdateOrderStatusHandler(db))
		}
	}
}
