package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Image         string    `json:"image,omitempty"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ImageURL builds the public URL for a stored product image path.
func ImageURL(baseURL, image string) string {
	if image == "" {
		return ""
	}

	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(image, "/")
}

type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required,min=3,max=200"`
	Image         string  `json:"image,omitempty"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
}

// UpdateProductRequest carries only the catalog fields. Stock is excluded on
// purpose: its column is adjusted solely by checkout's conditional decrement.
type UpdateProductRequest struct {
	Name  *string  `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Image *string  `json:"image,omitempty"`
	Price *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}

type ProductSummary struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Image         string    `json:"image,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
}
