package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/threadly/threadly-api/controllers/product"
	"github.com/threadly/threadly-api/middleware"
	"gorm.io/gorm"
)

// SetupProductRoutes registers the public catalog endpoints and the
// admin-gated write endpoints.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/categories/all", productcontroller.GetAllCategories(db))
		products.GET("/:id", productcontroller.GetProductByID(db))

		admin := products.Group("")
		admin.Use(middleware.RequireAdmin(db))
		{
			admin.POST("", productcontroller.CreateProduct(db))
			admin.PUT("/:id", productcontroller.UpdateProduct(db))
			admin.DELETE("/:id", productcontroller.DeleteProduct(db))
			admin.POST("/categories", productcontroller.CreateCategory(db))
			admin.GET("/admin/export-excel", productcontroller.ExportProductsToExcel(db))
		}
	}
}
