package routes

import (
	"github.com/gin-gonic/gin"
	wishlistControllers "github.com/threadly/threadly-api/controllers/wishlist"
	"github.com/threadly/threadly-api/middleware"
	"gorm.io/gorm"
)

// SetupWishlistRoutes registers all "/wishlist/*" endpoints. JWT-protected.
func SetupWishlistRoutes(r *gin.Engine, db *gorm.DB) {
	wishlist := r.Group("/wishlist")
	wishlist.Use(middleware.RequireUser(db))
	{
		wishlist.GET("", wishlistControllers.GetWishlist(db))
		wishlist.POST("/add", wishlistControllers.AddToWishlist(db))
		wishlist.DELETE("/remove/:productId", wishlistControllers.RemoveFromWishlist(db))
		wishlist.GET("/check/:productId", wishlistControllers.CheckWishlist(db))
	}
}
