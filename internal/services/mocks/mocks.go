// Package mocks provides testify mocks for the service interfaces.
package mocks

import (
	"context"

	"github.com/areejrazzaq/shopping-cart/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartResponse, error) {
	args := m.Called(ctx, userID, req)

	if c, ok := args.Get(0).(*models.CartResponse); ok {
		return c, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {
	args := m.Called(ctx, userID)

	if c, ok := args.Get(0).(*models.CartResponse); ok {
		return c, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartResponse, error) {
	args := m.Called(ctx, userID, itemID, req)

	if c, ok := args.Get(0).(*models.CartResponse); ok {
		return c, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartResponse, error) {
	args := m.Called(ctx, userID, itemID)

	if c, ok := args.Get(0).(*models.CartResponse); ok {
		return c, args.Error(1)
	}

	return nil, args.Error(1)
}

type CheckoutService struct {
	mock.Mock
}

func (m *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID) (*models.CheckoutResponse, error) {
	args := m.Called(ctx, userID)

	if c, ok := args.Get(0).(*models.CheckoutResponse); ok {
		return c, args.Error(1)
	}

	return nil, args.Error(1)
}

type ProductService struct {
	mock.Mock
}

func (m *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)

	if p, ok := args.Get(0).(*models.Product); ok {
		return p, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)

	if p, ok := args.Get(0).(*models.Product); ok {
		return p, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)

	if p, ok := args.Get(0).(*models.Product); ok {
		return p, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductService) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	args := m.Called(ctx, page, size)

	if p, ok := args.Get(0).([]*models.Product); ok {
		return p, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

type ReportService struct {
	mock.Mock
}

func (m *ReportService) SendDailyReport(ctx context.Context) (*models.DailyOrderReport, error) {
	args := m.Called(ctx)

	if r, ok := args.Get(0).(*models.DailyOrderReport); ok {
		return r, args.Error(1)
	}

	return nil, args.Error(1)
}

type Notifier struct {
	mock.Mock
}

func (m *Notifier) OrderCompleted(ctx context.Context, order *models.Order) {
	m.Called(ctx, order)
}

func (m *Notifier) LowStockDetected(ctx context.Context, products []models.Product) {
	m.Called(ctx, products)
}
