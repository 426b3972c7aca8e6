package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/threadly/threadly-api/controllers/cart"
	"github.com/threadly/threadly-api/middleware"
	"gorm.io/gorm"
)

// SetupCartRoutes registers all "/cart/*" endpoints. JWT-protected.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/cart")
	cart.Use(middleware.RequireUser(db))
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("/add", cartControllers.AddToCart(db))
		cart.PUT("/update/:id", cartControllers.UpdateCartItem(db))
		cart.DELETE("/remove/:id", cartControllers.RemoveCartItem(db))
		cart.DELETE("/clear", cartControllers.ClearCart(db))
	}
}
