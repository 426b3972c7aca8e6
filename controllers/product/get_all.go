package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/threadly/threadly-api/apperrors"
	"github.com/threadly/threadly-api/models"
	"gorm.io/gorm"
)

// GetProducts lists the catalog with optional category/search filters
// and limit/offset pagination. Response: {"products": [...], "total": n}.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")
		search := c.Query("search")

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit < 1 {
			apperrors.Respond(c, apperrors.Validation("Invalid limit"))
			return
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			apperrors.Respond(c, apperrors.Validation("Invalid offset"))
			return
		}

		query := db.Model(&models.Product{}).Preload("Category")

		if category != "" {
			query = query.
				Joins("JOIN categories ON categories.id = products.category_id").
				Where("LOWER(categories.name) LIKE LOWER(?)", "%"+category+"%")
		}

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where(
				"LOWER(products.name) LIKE LOWER(?) OR LOWER(products.description) LIKE LOWER(?) OR LOWER(products.brand) LIKE LOWER(?)",
				likePattern, likePattern, likePattern,
			)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		var products []models.Product
		if err := query.
			Order("products.created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&products).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"total":    total,
		})
	}
}
