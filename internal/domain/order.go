package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusFailed    = "FAILED"
)

func NewOrder(customerID uuid.UUID, kind OrderKind, items []OrderItem) Order {
	return Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Kind:       kind,
		Status:     OrderStatusPending,
		Items:      items,
		CreatedAt:  time.Now(),
	}
}
