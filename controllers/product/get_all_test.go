package productcontroller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/threadly/threadly-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.WishlistItem{},
	))
	return db
}

func catalogRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", GetProducts(db))
	r.GET("/products/categories/all", GetAllCategories(db))
	r.GET("/products/:id", GetProductByID(db))
	return r
}

type productsResponse struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

func listProducts(t *testing.T, r *gin.Engine, path string) productsResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, path)

	var resp productsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetProductsFilters(t *testing.T) {
	db := openTestDB(t)

	jackets := models.Category{Name: "Jackets"}
	shoes := models.Category{Name: "Shoes"}
	require.NoError(t, db.Create(&jackets).Error)
	require.NoError(t, db.Create(&shoes).Error)

	seed := []models.Product{
		{Name: "Denim Jacket", Brand: "Acme", Price: 49.99, StockQuantity: 5, CategoryID: &jackets.ID},
		{Name: "Leather Jacket", Brand: "Nova", Price: 99.99, StockQuantity: 2, CategoryID: &jackets.ID},
		{Name: "Running Shoe", Brand: "Acme", Price: 59.99, StockQuantity: 8, CategoryID: &shoes.ID},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	r := catalogRouter(db)

	resp := listProducts(t, r, "/products")
	require.EqualValues(t, 3, resp.Total)
	require.Len(t, resp.Products, 3)

	resp = listProducts(t, r, "/products?category=jacket")
	require.EqualValues(t, 2, resp.Total)

	// search spans name, description and brand, case-insensitively
	resp = listProducts(t, r, "/products?search=acme")
	require.EqualValues(t, 2, resp.Total)

	resp = listProducts(t, r, "/products?limit=2&offset=2")
	require.EqualValues(t, 3, resp.Total)
	require.Len(t, resp.Products, 1)
}

func TestGetProductByID(t *testing.T) {
	db := openTestDB(t)
	category := models.Category{Name: "Jackets"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{Name: "Denim Jacket", Price: 49.99, StockQuantity: 5, CategoryID: &category.ID}
	require.NoError(t, db.Create(&product).Error)

	r := catalogRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/products/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"Denim Jacket"`)
	require.Contains(t, w.Body.String(), `"Jackets"`)

	req = httptest.NewRequest(http.MethodGet, "/products/999", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/products/not-a-number", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllCategoriesSorted(t *testing.T) {
	db := openTestDB(t)
	for _, name := range []string{"Shoes", "Accessories", "Jackets"} {
		require.NoError(t, db.Create(&models.Category{Name: name}).Error)
	}

	r := catalogRouter(db)
	req := httptest.NewRequest(http.MethodGet, "/products/categories/all", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var categories []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 3)
	require.Equal(t, "Accessories", categories[0].Name)
	require.Equal(t, "Jackets", categories[1].Name)
	require.Equal(t, "Shoes", categories[2].Name)
}
