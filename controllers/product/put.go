package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/threadly/threadly-api/apperrors"
	"github.com/threadly/threadly-api/models"
	"gorm.io/gorm"
)

// UpdateProduct replaces a product's catalog fields. Admin only.
// Stock edits land here too; the order engine re-checks stock at
// placement time regardless.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid product ID"))
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid request payload"))
			return
		}
		if err := input.validate(db); err != nil {
			apperrors.Respond(c, err)
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Respond(c, apperrors.NotFound("Product"))
			} else {
				apperrors.Respond(c, apperrors.Internal(err))
			}
			return
		}

		product.Name = input.Name
		product.Description = input.Description
		product.Price = input.Price
		product.Brand = input.Brand
		product.CategoryID = input.CategoryID
		product.StockQuantity = input.StockQuantity
		product.MainImage = input.MainImage
		product.Images = input.Images

		if err := db.Save(&product).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}
		if err := db.Preload("Category").First(&product, product.ID).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Product updated successfully",
			"product": product,
		})
	}
}
