package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultProductImage       = "https://placehold.co/400x400/png"
	DefaultProductDescription = "New product"
)

// Product is a catalog entry. Products are created and deleted, never edited.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Category    string          `gorm:"type:varchar(64);not null;index" json:"category"`
	ImageURL    string          `gorm:"type:text;not null" json:"image_url"`
	Description string          `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
