package cartControllers

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
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.WishlistItem{},
	))
	return db
}

// testRouter wires the cart handlers behind a stub that injects the
// authenticated user id, standing in for the JWT middleware.
func testRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	inject := func(c *gin.Context) { c.Set("user_id", userID) }

	r.GET("/cart", inject, GetCart(db))
	r.POST("/cart/add", inject, AddToCart(db))
	r.PUT("/cart/update/:id", inject, UpdateCartItem(db))
	r.DELETE("/cart/remove/:id", inject, RemoveCartItem(db))
	r.DELETE("/cart/clear", inject, ClearCart(db))
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

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, StockQuantity: stock}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestAddToCartStockBoundary(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Denim Jacket", 49.99, 3)
	r := testRouter(db, 1)

	// quantity == stock is allowed
	w := doJSON(t, r, http.MethodPost, "/cart/add", gin.H{
		"productId": product.ID, "quantity": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// one past stock is rejected, and the line is untouched
	w = doJSON(t, r, http.MethodPost, "/cart/add", gin.H{
		"productId": product.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusConflict, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "INSUFFICIENT_STOCK", body["error"])

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", 1).First(&item).Error)
	require.Equal(t, 3, item.Quantity)
}

func TestAddToCartMergesSameLine(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Denim Jacket", 49.99, 10)
	r := testRouter(db, 1)

	w := doJSON(t, r, http.MethodPost, "/cart/add", gin.H{
		"productId": product.ID, "quantity": 2, "size": "M",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/cart/add", gin.H{
		"productId": product.ID, "quantity": 3, "size": "M",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// a different size is a separate line
	w = doJSON(t, r, http.MethodPost, "/cart/add", gin.H{
		"productId": product.ID, "quantity": 1, "size": "L",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", 1).Order("id").Find(&items).Error)
	require.Len(t, items, 2)
	require.Equal(t, 5, items[0].Quantity)
	require.Equal(t, 1, items[1].Quantity)
}

// Unsized lines have no size value for the unique index to bind, so
// the merge in AddToCart is what keeps them to a single line.
func TestAddToCartMergesUnsizedLine(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Canvas Tote", 24.99, 10)
	r := testRouter(db, 1)

	w := doJSON(t, r, http.MethodPost, "/cart/add", gin.H{
		"productId": product.ID, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/cart/add", gin.H{
		"productId": product.ID, "quantity": 4,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", 1).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, 6, items[0].Quantity)
	require.Nil(t, items[0].Size)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := openTestDB(t)
	r := testRouter(db, 1)

	w := doJSON(t, r, http.MethodPost, "/cart/add", gin.H{
		"productId": 12345, "quantity": 1,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItem(t *testing.T) {
	db := openTestDB(t)
	product := seedProduct(t, db, "Denim Jacket", 49.99, 5)
	require.NoError(t, db.Create(&models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 1}).Error)

	var item models.CartItem
	require.NoError(t, db.First(&item).Error)
	r := testRouter(db, 1)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/cart/update/%d", item.ID), gin.H{"quantity": 5})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/cart/update/%d", item.ID), gin.H{"quantity": 6})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/cart/update/%d", item.ID), gin.H{"quantity": -1})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// another user cannot touch the line
	other := testRouter(db, 2)
	w = doJSON(t, other, http.MethodPut, fmt.Sprintf("/cart/update/%d", item.ID), gin.H{"quantity": 2})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveAndClearCart(t *testing.T) {
	db := openTestDB(t)
	productA := seedProduct(t, db, "Denim Jacket", 49.99, 5)
	productB := seedProduct(t, db, "Wool Scarf", 19.99, 5)
	require.NoError(t, db.Create(&models.CartItem{UserID: 1, ProductID: productA.ID, Quantity: 1}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: 1, ProductID: productB.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: 2, ProductID: productA.ID, Quantity: 1}).Error)

	r := testRouter(db, 1)

	var line models.CartItem
	require.NoError(t, db.Where("user_id = ? AND product_id = ?", 1, productA.ID).First(&line).Error)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/cart/remove/%d", line.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/cart/remove/%d", line.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/cart/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// only the other user's line survives
	var remaining []models.CartItem
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.EqualValues(t, 2, remaining[0].UserID)
}
