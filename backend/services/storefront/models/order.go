package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

// Order is a completed checkout. Total is the amount charged at checkout and
// is never recomputed.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	PaymentMethod string          `gorm:"type:varchar(32);not null" json:"payment_method"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is one purchased unit. ProductID is a plain reference with no
// foreign key; the product may be deleted later.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}

// Subtotal is unit price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
