package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/threadly/threadly-api/apperrors"
	"github.com/threadly/threadly-api/middleware"
	"github.com/threadly/threadly-api/models"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Size      *string `json:"size"`
}

type CreateOrderRequest struct {
	// Items is optional; when empty the order is built from the
	// caller's current cart, snapshotting live product prices.
	Items           []OrderItemInput `json:"items"`
	PaymentMethod   string           `json:"paymentMethod"`
	ShippingAddress string           `json:"shippingAddress"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// generateOrderRef produces a unique order reference, e.g.
// 20250908130500-<uuid4>.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// PlaceOrder converts the request (explicit items or the user's cart)
// into a persisted Order + OrderItems, decrements stock and clears the
// cart, all inside one transaction. Any failure rolls everything
// back; partial orders are never observable.
//
// Stock is taken with a conditional decrement
// (stock_quantity = stock_quantity - n WHERE stock_quantity >= n)
// checked for affected rows, so two simultaneous orders for the last
// unit cannot both win.
func PlaceOrder(db *gorm.DB, userID uint, req CreateOrderRequest) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		lines := req.Items
		fromCart := len(lines) == 0

		if fromCart {
			var cartItems []models.CartItem
			if err := tx.Preload("Product").Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
				return apperrors.Internal(err)
			}
			for _, item := range cartItems {
				lines = append(lines, OrderItemInput{
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
					Price:     item.Product.Price,
					Size:      item.Size,
				})
			}
		}

		if len(lines) == 0 {
			return apperrors.Validation("Order must contain at least one item")
		}

		var total float64
		orderItems := make([]models.OrderItem, 0, len(lines))

		for _, line := range lines {
			if line.Quantity < 1 {
				return apperrors.Validation("Item quantity must be greater than 0")
			}
			if line.Price < 0 {
				return apperrors.Validation("Item price cannot be negative")
			}

			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound(fmt.Sprintf("Product with ID %d", line.ProductID))
				}
				return apperrors.Internal(err)
			}

			if product.StockQuantity < line.Quantity {
				return apperrors.InsufficientStock(
					product.ID, product.Name, product.StockQuantity, line.Quantity)
			}

			// The submitted price is the snapshot; concurrent catalog
			// price edits must not alter an in-flight order.
			total += line.Price * float64(line.Quantity)

			orderItems = append(orderItems, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price,
				Size:      line.Size,
			})
		}

		order = models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			Items:           orderItems,
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
			PaymentMethod:   req.PaymentMethod,
			ShippingAddress: req.ShippingAddress,
			CreatedAt:       time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperrors.Internal(err)
		}

		for _, line := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
			if res.Error != nil {
				return apperrors.Internal(res.Error)
			}
			if res.RowsAffected == 0 {
				// Lost the race to a concurrent order between the read
				// above and this write.
				var product models.Product
				if err := tx.First(&product, line.ProductID).Error; err != nil {
					return apperrors.NotFound(fmt.Sprintf("Product with ID %d", line.ProductID))
				}
				return apperrors.InsufficientStock(
					product.ID, product.Name, product.StockQuantity, line.Quantity)
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return apperrors.Internal(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /orders/create
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid request payload"))
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		broadcastNewOrder(*order)

		c.JSON(http.StatusCreated, gin.H{
			"message": "Order created successfully",
			"order": gin.H{
				"id":          order.ID,
				"orderRef":    order.OrderRef,
				"totalAmount": order.TotalAmount,
				"status":      order.Status,
				"createdAt":   order.CreatedAt,
			},
		})
	}
}

// GET /orders/my-orders
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var orders []models.Order
		if err := db.
			Preload("Items").
			Preload("Items.Product").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id, scoped to the calling user.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid order ID"))
			return
		}

		var order models.Order
		if err := db.
			Preload("Items").
			Preload("Items.Product").
			Where("id = ? AND user_id = ?", id, userID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Respond(c, apperrors.NotFound("Order"))
			} else {
				apperrors.Respond(c, apperrors.Internal(err))
			}
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders/admin/all?status&limit&offset
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		query := db.Model(&models.Order{})
		if status := c.Query("status"); status != "" {
			parsed, err := models.ParseOrderStatus(status)
			if err != nil {
				apperrors.Respond(c, apperrors.Validation("Invalid status"))
				return
			}
			query = query.Where("status = ?", parsed)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		var orders []models.Order
		if err := query.
			Preload("User").
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&orders).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"total":  total,
		})
	}
}

// PUT /orders/admin/:id/status
//
// Single-row update; never touches stock or carts.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid order ID"))
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid request payload"))
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid status"))
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", id).Update("status", newStatus)
		if result.Error != nil {
			apperrors.Respond(c, apperrors.Internal(result.Error))
			return
		}
		if result.RowsAffected == 0 {
			apperrors.Respond(c, apperrors.NotFound("Order"))
			return
		}

		var order models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Items.Product").
			First(&order, id).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Order status updated successfully",
			"order":   order,
		})
	}
}
