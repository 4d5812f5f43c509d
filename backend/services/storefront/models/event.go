package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated   = "order.created"
	EventOrderCompleted = "order.completed"
)

// OrderEvent is published to SNS and/or Kafka after order state changes.
type OrderEvent struct {
	Event         string          `json:"event"`
	OrderID       uint            `json:"order_id"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
	Timestamp     time.Time       `json:"timestamp"`
}

func NewOrderEvent(event string, order *Order) OrderEvent {
	return OrderEvent{
		Event:         event,
		OrderID:       order.ID,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		ItemCount:     len(order.Items),
		Timestamp:     time.Now().UTC(),
	}
}
