package repository_test

import (
	"time"

	"github.com/areejrazzaq/shopping-cart/internal/models"
	"github.com/google/uuid"
)

func newTestProduct(name string, price float64, stock int) *models.Product {
	now := time.Now()

	return &models.Product{
		ID:            uuid.New(),
		Name:          name,
		Image:         "products/test.jpg",
		Price:         price,
		StockQuantity: stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
