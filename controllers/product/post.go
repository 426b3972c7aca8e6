package productcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/threadly/threadly-api/apperrors"
	"github.com/threadly/threadly-api/models"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Brand         string   `json:"brand"`
	CategoryID    *uint    `json:"categoryId"`
	StockQuantity int      `json:"stockQuantity"`
	MainImage     string   `json:"mainImage"`
	Images        []string `json:"images"`
}

func (in *ProductInput) validate(db *gorm.DB) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperrors.Validation("Product name is required")
	}
	if in.Price <= 0 {
		return apperrors.Validation("Price must be greater than 0")
	}
	if in.StockQuantity < 0 {
		return apperrors.Validation("Stock quantity cannot be negative")
	}
	if in.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, *in.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Category")
			}
			return apperrors.Internal(err)
		}
	}
	return nil
}

// CreateProduct creates a new catalog product. Admin only.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid request payload"))
			return
		}
		if err := input.validate(db); err != nil {
			apperrors.Respond(c, err)
			return
		}

		product := models.Product{
			Name:          input.Name,
			Description:   input.Description,
			Price:         input.Price,
			Brand:         input.Brand,
			CategoryID:    input.CategoryID,
			StockQuantity: input.StockQuantity,
			MainImage:     input.MainImage,
			Images:        input.Images,
		}
		if err := db.Create(&product).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}
		if err := db.Preload("Category").First(&product, product.ID).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Product created successfully",
			"product": product,
		})
	}
}
