package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/threadly/threadly-api/apperrors"
	"github.com/threadly/threadly-api/models"
	"gorm.io/gorm"
)

// GET /orders/admin/stats returns dashboard counters. Revenue only counts
// delivered orders.
func GetOrderStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalOrders, pendingOrders int64
		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}
		if err := db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusPending).
			Count(&pendingOrders).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		var totalRevenue float64
		if err := db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusDelivered).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalRevenue).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		var recentOrders []models.Order
		if err := db.
			Preload("User").
			Order("created_at DESC").
			Limit(5).
			Find(&recentOrders).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalOrders":   totalOrders,
			"pendingOrders": pendingOrders,
			"totalRevenue":  totalRevenue,
			"recentOrders":  recentOrders,
		})
	}
}
