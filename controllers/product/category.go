package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/threadly/threadly-api/apperrors"
	"github.com/threadly/threadly-api/models"
	"gorm.io/gorm"
)

// GetAllCategories lists categories ordered by name.
// GET /products/categories/all
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name ASC").Find(&categories).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// CreateCategory adds a category. Admin only.
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid request payload"))
			return
		}
		input.Name = strings.TrimSpace(input.Name)
		if input.Name == "" {
			apperrors.Respond(c, apperrors.Validation("Category name is required"))
			return
		}

		var existing models.Category
		if err := db.Where("LOWER(name) = LOWER(?)", input.Name).First(&existing).Error; err == nil {
			apperrors.Respond(c, apperrors.Conflict("A category with this name already exists"))
			return
		}

		category := models.Category{Name: input.Name}
		if err := db.Create(&category).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal(err))
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}
