package models

import "time"

// CartItem is one (product, quantity, size) line in a user's cart.
// Adding the same (product, size) pair again merges into the existing
// line. The unique index backs that up for sized lines only: Size is
// nullable and NULLs compare distinct under Postgres, so for unsized
// products the merge in AddToCart is the single-line guarantee.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_cart_user_product_size" json:"userId"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product_size" json:"productId"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Size      *string   `gorm:"uniqueIndex:idx_cart_user_product_size" json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
