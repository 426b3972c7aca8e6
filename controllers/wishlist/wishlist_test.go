package wishlistControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
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
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.WishlistItem{}))
	return db
}

func testRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	inject := func(c *gin.Context) { c.Set("user_id", userID) }

	r.GET("/wishlist", inject, GetWishlist(db))
	r.POST("/wishlist/add", inject, AddToWishlist(db))
	r.DELETE("/wishlist/remove/:productId", inject, RemoveFromWishlist(db))
	r.GET("/wishlist/check/:productId", inject, CheckWishlist(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWishlistAddRemoveCheck(t *testing.T) {
	db := openTestDB(t)
	product := models.Product{Name: "Denim Jacket", Price: 49.99, StockQuantity: 5}
	require.NoError(t, db.Create(&product).Error)
	r := testRouter(db, 1)

	checkPath := fmt.Sprintf("/wishlist/check/%d", product.ID)

	w := doJSON(t, r, http.MethodGet, checkPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"inWishlist":false`)

	w = doJSON(t, r, http.MethodPost, "/wishlist/add", gin.H{"productId": product.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	// duplicate add is a conflict, not a second row
	w = doJSON(t, r, http.MethodPost, "/wishlist/add", gin.H{"productId": product.ID})
	require.Equal(t, http.StatusConflict, w.Code)
	var n int64
	require.NoError(t, db.Model(&models.WishlistItem{}).Count(&n).Error)
	require.EqualValues(t, 1, n)

	w = doJSON(t, r, http.MethodGet, checkPath, nil)
	require.Contains(t, w.Body.String(), `"inWishlist":true`)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/wishlist/remove/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/wishlist/remove/%d", product.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// A line inserted behind the handler's back still yields 409 through
// the unique index, not a 500.
func TestWishlistAddExistingRowConflicts(t *testing.T) {
	db := openTestDB(t)
	product := models.Product{Name: "Wool Scarf", Price: 19.99, StockQuantity: 3}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&models.WishlistItem{UserID: 1, ProductID: product.ID}).Error)
	r := testRouter(db, 1)

	w := doJSON(t, r, http.MethodPost, "/wishlist/add", gin.H{"productId": product.ID})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "already in wishlist")

	var n int64
	require.NoError(t, db.Model(&models.WishlistItem{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestWishlistUnknownProduct(t *testing.T) {
	db := openTestDB(t)
	r := testRouter(db, 1)

	w := doJSON(t, r, http.MethodPost, "/wishlist/add", gin.H{"productId": 777})
	require.Equal(t, http.StatusNotFound, w.Code)
}
