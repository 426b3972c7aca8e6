package wishlistControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/threadly/threadly-api/apperrors"
	"github.com/threadly/threadly-api/middleware"
	"github.com/threadly/threadly-api/models"
	"gorm.io/gorm"
)

type AddToWishlistInput struct {
	ProductID uint `json:"productId" binding:"required"`
}

// GET /wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var items []models.WishlistItem
		if err := db.
			Preload("Product").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&items).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// POST /wishlist/add
func AddToWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var input AddToWishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid request payload"))
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Respond(c, apperrors.NotFound("Product"))
			} else {
				apperrors.Respond(c, apperrors.Internal(err))
			}
			return
		}

		// the unique index on (user_id, product_id) rejects duplicates,
		// including two adds racing each other
		item := models.WishlistItem{
			UserID:    userID,
			ProductID: input.ProductID,
		}
		if err := db.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apperrors.Respond(c, apperrors.Conflict("Product already in wishlist"))
			} else {
				apperrors.Respond(c, apperrors.Internal(err))
			}
			return
		}
		db.Preload("Product").First(&item, item.ID)

		c.JSON(http.StatusCreated, gin.H{
			"message": "Product added to wishlist successfully",
			"item":    item,
		})
	}
}

// DELETE /wishlist/remove/:productId
func RemoveFromWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		productID, err := strconv.Atoi(c.Param("productId"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid product ID"))
			return
		}

		result := db.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&models.WishlistItem{})
		if result.Error != nil {
			apperrors.Respond(c, apperrors.Internal(result.Error))
			return
		}
		if result.RowsAffected == 0 {
			apperrors.Respond(c, apperrors.NotFound("Wishlist item"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product removed from wishlist successfully"})
	}
}

// GET /wishlist/check/:productId is a lightweight membership lookup
// for product pages.
func CheckWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		productID, err := strconv.Atoi(c.Param("productId"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid product ID"))
			return
		}

		var count int64
		if err := db.Model(&models.WishlistItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Count(&count).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"inWishlist": count > 0})
	}
}
