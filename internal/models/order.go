package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is a committed purchase. Orders and their items are never mutated
// after creation; historical prices live in OrderItem.SalePrice.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	SalePrice float64   `json:"sale_price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderTotal sums an order from its frozen line prices.
func OrderTotal(items []OrderItem) float64 {
	var total float64

	for _, item := range items {
		total += item.SalePrice * float64(item.Quantity)
	}

	return total
}

type CheckoutResponse struct {
	OrderID    uuid.UUID `json:"order_id"`
	OrderTotal float64   `json:"order_total"`
}

// StockShortage reports one product that could not satisfy a requested
// quantity, with enough detail for the caller to adjust.
type StockShortage struct {
	ProductID uuid.UUID `json:"product_id"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}
