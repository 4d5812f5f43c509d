package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const DeletedProductLabel = "Deleted product"

// ReceiptLine is one printed row of a ticket.
type ReceiptLine struct {
	ProductID   uint            `json:"product_id"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ImageURL    string          `json:"image_url,omitempty"`
	Missing     bool            `json:"missing,omitempty"`
}

// Receipt is the printable view of an order.
type Receipt struct {
	OrderID       uint            `json:"order_id"`
	Folio         string          `json:"folio"`
	CreatedAt     time.Time       `json:"created_at"`
	PaymentMethod string          `json:"payment_method"`
	PaymentLabel  string          `json:"payment_label"`
	Lines         []ReceiptLine   `json:"lines"`
	Total         decimal.Decimal `json:"total"`
}
