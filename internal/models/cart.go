package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the staging area for one user's prospective purchase. At most one
// cart exists per user; it is recreated lazily after checkout clears it.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one (product, quantity) line. A cart holds at most one line per
// product; adding the same product again increments the quantity instead.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	CartID    uuid.UUID `json:"cart_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
}

// Subtotal prices the cart against current product prices. This is the
// pre-checkout view, not the snapshot frozen into an order.
func Subtotal(items []CartItem) float64 {
	var total float64

	for _, item := range items {
		if item.Product != nil {
			total += float64(item.Quantity) * item.Product.Price
		}
	}

	return total
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type CartItemResponse struct {
	ID        uuid.UUID      `json:"id"`
	ProductID uuid.UUID      `json:"product_id"`
	Quantity  int            `json:"quantity"`
	Product   ProductSummary `json:"product"`
}

type CartResponse struct {
	CartID   *uuid.UUID         `json:"cart_id"`
	Items    []CartItemResponse `json:"items"`
	Subtotal float64            `json:"subtotal"`
}
