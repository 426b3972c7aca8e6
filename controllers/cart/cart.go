package cartControllers

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

type AddToCartInput struct {
	ProductID uint    `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity"`
	Size      *string `json:"size"`
}

type UpdateCartInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var items []models.CartItem
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

// POST /cart/add
//
// Merges into an existing (product, size) line if there is one. The
// stock check here is advisory; the order engine re-validates inside
// its transaction.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid request payload"))
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}
		if input.Quantity < 1 {
			apperrors.Respond(c, apperrors.Validation("Quantity must be greater than 0"))
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
		if product.StockQuantity < input.Quantity {
			apperrors.Respond(c, apperrors.InsufficientStock(
				product.ID, product.Name, product.StockQuantity, input.Quantity))
			return
		}

		sizeQuery := db.Where("user_id = ? AND product_id = ?", userID, input.ProductID)
		if input.Size != nil {
			sizeQuery = sizeQuery.Where("size = ?", *input.Size)
		} else {
			sizeQuery = sizeQuery.Where("size IS NULL")
		}

		var item models.CartItem
		err := sizeQuery.First(&item).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Respond(c, apperrors.Internal(err))
				return
			}
			item = models.CartItem{
				UserID:    userID,
				ProductID: input.ProductID,
				Quantity:  input.Quantity,
				Size:      input.Size,
			}
			if err := db.Create(&item).Error; err != nil {
				apperrors.Respond(c, apperrors.Internal(err))
				return
			}
			db.Preload("Product").First(&item, item.ID)
			c.JSON(http.StatusCreated, gin.H{
				"message": "Item added to cart successfully",
				"item":    item,
			})
			return
		}

		newQuantity := item.Quantity + input.Quantity
		if product.StockQuantity < newQuantity {
			apperrors.Respond(c, apperrors.InsufficientStock(
				product.ID, product.Name, product.StockQuantity, newQuantity))
			return
		}

		item.Quantity = newQuantity
		if err := db.Save(&item).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}
		db.Preload("Product").First(&item, item.ID)
		c.JSON(http.StatusOK, gin.H{
			"message": "Cart updated successfully",
			"item":    item,
		})
	}
}

// PUT /cart/update/:id sets an absolute quantity.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid cart item ID"))
			return
		}

		var input UpdateCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid request payload"))
			return
		}
		if input.Quantity <= 0 {
			apperrors.Respond(c, apperrors.Validation("Quantity must be greater than 0"))
			return
		}

		var item models.CartItem
		if err := db.
			Preload("Product").
			Where("id = ? AND user_id = ?", id, userID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Respond(c, apperrors.NotFound("Cart item"))
			} else {
				apperrors.Respond(c, apperrors.Internal(err))
			}
			return
		}

		if item.Product.StockQuantity < input.Quantity {
			apperrors.Respond(c, apperrors.InsufficientStock(
				item.Product.ID, item.Product.Name, item.Product.StockQuantity, input.Quantity))
			return
		}

		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Cart item updated successfully",
			"item":    item,
		})
	}
}

// DELETE /cart/remove/:id
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid cart item ID"))
			return
		}

		result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CartItem{})
		if result.Error != nil {
			apperrors.Respond(c, apperrors.Internal(result.Error))
			return
		}
		if result.RowsAffected == 0 {
			apperrors.Respond(c, apperrors.NotFound("Cart item"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart successfully"})
	}
}

// DELETE /cart/clear
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
	}
}
