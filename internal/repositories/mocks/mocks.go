// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/areejrazzaq/shopping-cart/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)

	if p, ok := args.Get(0).(*models.Product); ok {
		return p, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	args := m.Called(ctx, page, size)

	if p, ok := args.Get(0).([]*models.Product); ok {
		return p, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *ProductRepository) GetAvailableStock(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *ProductRepository) DecrementStock(ctx context.Context, tx *sql.Tx, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, tx, id, quantity)
	return args.Error(0)
}

type CartRepository struct {
	mock.Mock
}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

func (m *CartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if c, ok := args.Get(0).(*models.Cart); ok {
		return c, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartRepository) GetCartWithItems(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if c, ok := args.Get(0).(*models.Cart); ok {
		return c, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartRepository) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity, maxQuantity int) error {
	args := m.Called(ctx, cartID, productID, quantity, maxQuantity)
	return args.Error(0)
}

func (m *CartRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, uuid.UUID, error) {
	args := m.Called(ctx, itemID)

	ownerID, _ := args.Get(1).(uuid.UUID)

	if item, ok := args.Get(0).(*models.CartItem); ok {
		return item, ownerID, args.Error(2)
	}

	return nil, ownerID, args.Error(2)
}

func (m *CartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *CartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *CartRepository) ClearCart(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) error {
	args := m.Called(ctx, tx, cartID)
	return args.Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (m *OrderRepository) CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)

	if o, ok := args.Get(0).(*models.Order); ok {
		return o, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderRepository) ListOrdersByCustomer(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {
	args := m.Called(ctx, userID, page, size)

	if o, ok := args.Get(0).([]models.Order); ok {
		return o, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *OrderRepository) ListOrdersSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	args := m.Called(ctx, since)

	if o, ok := args.Get(0).([]models.Order); ok {
		return o, args.Error(1)
	}

	return nil, args.Error(1)
}

// TxManager runs the unit of work against a nil *sql.Tx so repository mocks
// can be asserted without a live database.
type TxManager struct {
	mock.Mock
}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	args := m.Called(ctx, fn)

	if args.Error(0) != nil {
		return args.Error(0)
	}

	return fn(nil)
}
