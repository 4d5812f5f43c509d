package models

import "github.com/shopspring/decimal"

// CheckoutLine is one cart line as submitted at checkout.
type CheckoutLine struct {
	ProductID uint            `json:"id" binding:"required"`
	Price     decimal.Decimal `json:"price"`
}

// CheckoutRequest is the body of POST /orders.
type CheckoutRequest struct {
	Total         decimal.Decimal `json:"total"`
	Items         []CheckoutLine  `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string          `json:"payment_method"`
}

// CheckoutResult is always returned by checkout, on success and on failure.
type CheckoutResult struct {
	Success bool            `json:"success"`
	OrderID uint            `json:"order_id,omitempty"`
	Total   decimal.Decimal `json:"total"`
	Error   string          `json:"error,omitempty"`

	// Declined marks a failure caused by the payment decision rather than storage.
	Declined bool `json:"-"`
}
