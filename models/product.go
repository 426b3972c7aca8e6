package models

import "time"

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	Price         float64   `gorm:"not null" json:"price"`
	Brand         string    `json:"brand"`
	CategoryID    *uint     `gorm:"index" json:"categoryId"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	StockQuantity int       `gorm:"not null;default:0" json:"stockQuantity"`
	MainImage     string    `json:"mainImage"`
	Images        []string  `gorm:"serializer:json" json:"images"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
