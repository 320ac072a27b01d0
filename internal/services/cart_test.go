package service_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	appErrors "github.com/areejrazzaq/shopping-cart/internal/errors"
	"github.com/areejrazzaq/shopping-cart/internal/models"
	repository "github.com/areejrazzaq/shopping-cart/internal/repositories"
	repomocks "github.com/areejrazzaq/shopping-cart/internal/repositories/mocks"
	service "github.com/areejrazzaq/shopping-cart/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testImageBaseURL = "https://cdn.example.com/storage"

func setupCartServiceTest(t *testing.T) (service.CartService, *repomocks.CartRepository, *repomocks.ProductRepository) {
	t.Helper()

	cartRepo := repomocks.NewCartRepository()
	productRepo := repomocks.NewProductRepository()
	svc := service.NewCartService(cartRepo, productRepo, testImageBaseURL)

	return svc, cartRepo, productRepo
}

func TestAddItem(t *testing.T) {
	t.Run("Success - New Line", func(t *testing.T) {
		// Arrange
		svc, cartRepo, productRepo := setupCartServiceTest(t)
		userID := uuid.New()
		product := &models.Product{ID: uuid.New(), Name: "Puma Suede", Image: "products/suede.jpg", Price: 75.00, StockQuantity: 8}
		cart := &models.Cart{ID: uuid.New(), UserID: userID}

		productRepo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("GetOrCreateCart", mock.Anything, userID).Return(cart, nil)
		cartRepo.On("UpsertItem", mock.Anything, cart.ID, product.ID, 2, 8).Return(nil)
		cartRepo.On("GetCartWithItems", mock.Anything, userID).Return(&models.Cart{
			ID:     cart.ID,
			UserID: userID,
			Items: []models.CartItem{
				{ID: uuid.New(), CartID: cart.ID, ProductID: product.ID, Quantity: 2, Product: product},
			},
		}, nil)

		// Act
		result, err := svc.AddItem(context.Background(), userID, &models.AddItemRequest{ProductID: product.ID, Quantity: 2})

		// Assert
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, 2, result.Items[0].Quantity)
		assert.InDelta(t, 150.00, result.Subtotal, 0.001, "Subtotal should price lines against the live product price")
		assert.Equal(t, testImageBaseURL+"/products/suede.jpg", result.Items[0].Product.ImageURL)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Quantity Defaults To One", func(t *testing.T) {
		// Arrange
		svc, cartRepo, productRepo := setupCartServiceTest(t)
		userID := uuid.New()
		product := &models.Product{ID: uuid.New(), Price: 10.00, StockQuantity: 3}
		cart := &models.Cart{ID: uuid.New(), UserID: userID}

		productRepo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("GetOrCreateCart", mock.Anything, userID).Return(cart, nil)
		cartRepo.On("UpsertItem", mock.Anything, cart.ID, product.ID, 1, 3).Return(nil)
		cartRepo.On("GetCartWithItems", mock.Anything, userID).Return(cart, nil)

		// Act
		_, err := svc.AddItem(context.Background(), userID, &models.AddItemRequest{ProductID: product.ID})

		// Assert
		require.NoError(t, err)
		cartRepo.AssertCalled(t, "UpsertItem", mock.Anything, cart.ID, product.ID, 1, 3)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		svc, cartRepo, productRepo := setupCartServiceTest(t)
		userID := uuid.New()
		productID := uuid.New()

		productRepo.On("GetProductByID", mock.Anything, productID).Return(nil, sql.ErrNoRows)

		// Act
		result, err := svc.AddItem(context.Background(), userID, &models.AddItemRequest{ProductID: productID, Quantity: 1})

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		cartRepo.AssertNotCalled(t, "GetOrCreateCart", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Requested More Than Stock", func(t *testing.T) {
		// Arrange
		svc, cartRepo, productRepo := setupCartServiceTest(t)
		userID := uuid.New()
		product := &models.Product{ID: uuid.New(), Price: 10.00, StockQuantity: 2}

		productRepo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil)

		// Act
		result, err := svc.AddItem(context.Background(), userID, &models.AddItemRequest{ProductID: product.ID, Quantity: 5})

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInsufficientStock, appErr.Code)
		require.Len(t, appErr.Shortages, 1)
		assert.Equal(t, 5, appErr.Shortages[0].Requested)
		assert.Equal(t, 2, appErr.Shortages[0].Available)
		cartRepo.AssertNotCalled(t, "UpsertItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Combined Quantity Exceeds Stock", func(t *testing.T) {
		// Arrange: the line already holds most of the stock, the guarded
		// upsert rejects the increment
		svc, cartRepo, productRepo := setupCartServiceTest(t)
		userID := uuid.New()
		product := &models.Product{ID: uuid.New(), Price: 10.00, StockQuantity: 5}
		cart := &models.Cart{ID: uuid.New(), UserID: userID}

		productRepo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("GetOrCreateCart", mock.Anything, userID).Return(cart, nil)
		cartRepo.On("UpsertItem", mock.Anything, cart.ID, product.ID, 3, 5).
			Return(fmt.Errorf("product %s: %w", product.ID, repository.ErrInsufficientStock))

		// Act
		result, err := svc.AddItem(context.Background(), userID, &models.AddItemRequest{ProductID: product.ID, Quantity: 3})

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInsufficientStock, appErr.Code)
	})
}

func TestGetCart(t *testing.T) {
	t.Run("Success - No Cart Yet", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := setupCartServiceTest(t)
		userID := uuid.New()

		cartRepo.On("GetCartWithItems", mock.Anything, userID).Return(nil, sql.ErrNoRows)

		// Act
		result, err := svc.GetCart(context.Background(), userID)

		// Assert
		require.NoError(t, err, "A user without a cart should get an empty view, not an error")
		assert.Nil(t, result.CartID)
		assert.Empty(t, result.Items)
		assert.Zero(t, result.Subtotal)
	})

	t.Run("Success - Subtotal From Live Prices", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := setupCartServiceTest(t)
		userID := uuid.New()
		cartID := uuid.New()

		cartRepo.On("GetCartWithItems", mock.Anything, userID).Return(&models.Cart{
			ID:     cartID,
			UserID: userID,
			Items: []models.CartItem{
				{ID: uuid.New(), ProductID: uuid.New(), Quantity: 2, Product: &models.Product{Price: 50.00, StockQuantity: 10}},
				{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1, Product: &models.Product{Price: 19.99, StockQuantity: 4}},
			},
		}, nil)

		// Act
		result, err := svc.GetCart(context.Background(), userID)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, result.CartID)
		assert.Equal(t, cartID, *result.CartID)
		require.Len(t, result.Items, 2)
		assert.InDelta(t, 119.99, result.Subtotal, 0.001)
	})
}

func TestUpdateItemQuantity(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := setupCartServiceTest(t)
		userID := uuid.New()
		itemID := uuid.New()
		item := &models.CartItem{ID: itemID, ProductID: uuid.New(), Quantity: 1, Product: &models.Product{Price: 10.00, StockQuantity: 6}}

		cartRepo.On("GetItem", mock.Anything, itemID).Return(item, userID, nil)
		cartRepo.On("UpdateItemQuantity", mock.Anything, itemID, 4).Return(nil)
		cartRepo.On("GetCartWithItems", mock.Anything, userID).Return(&models.Cart{ID: uuid.New(), UserID: userID}, nil)

		// Act
		_, err := svc.UpdateItemQuantity(context.Background(), userID, itemID, &models.UpdateQuantityRequest{Quantity: 4})

		// Assert
		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Foreign Item", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := setupCartServiceTest(t)
		userID := uuid.New()
		otherUserID := uuid.New()
		itemID := uuid.New()
		item := &models.CartItem{ID: itemID, Product: &models.Product{StockQuantity: 6}}

		cartRepo.On("GetItem", mock.Anything, itemID).Return(item, otherUserID, nil)

		// Act
		result, err := svc.UpdateItemQuantity(context.Background(), userID, itemID, &models.UpdateQuantityRequest{Quantity: 2})

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		cartRepo.AssertNotCalled(t, "UpdateItemQuantity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Missing Item Looks Like Foreign Item", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := setupCartServiceTest(t)
		userID := uuid.New()
		itemID := uuid.New()

		cartRepo.On("GetItem", mock.Anything, itemID).Return(nil, uuid.Nil, sql.ErrNoRows)

		// Act
		result, err := svc.UpdateItemQuantity(context.Background(), userID, itemID, &models.UpdateQuantityRequest{Quantity: 2})

		// Assert: the rejection is identical to the foreign-item one
		require.Error(t, err)
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("Failure - Quantity Above Stock", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := setupCartServiceTest(t)
		userID := uuid.New()
		itemID := uuid.New()
		item := &models.CartItem{ID: itemID, ProductID: uuid.New(), Quantity: 1, Product: &models.Product{Price: 10.00, StockQuantity: 3}}

		cartRepo.On("GetItem", mock.Anything, itemID).Return(item, userID, nil)

		// Act
		result, err := svc.UpdateItemQuantity(context.Background(), userID, itemID, &models.UpdateQuantityRequest{Quantity: 9})

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInsufficientStock, appErr.Code)
		cartRepo.AssertNotCalled(t, "UpdateItemQuantity", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := setupCartServiceTest(t)
		userID := uuid.New()
		itemID := uuid.New()
		item := &models.CartItem{ID: itemID, Product: &models.Product{}}

		cartRepo.On("GetItem", mock.Anything, itemID).Return(item, userID, nil)
		cartRepo.On("DeleteItem", mock.Anything, itemID).Return(nil)
		cartRepo.On("GetCartWithItems", mock.Anything, userID).Return(&models.Cart{ID: uuid.New(), UserID: userID}, nil)

		// Act
		result, err := svc.RemoveItem(context.Background(), userID, itemID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Already Removed", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := setupCartServiceTest(t)
		userID := uuid.New()
		itemID := uuid.New()

		cartRepo.On("GetItem", mock.Anything, itemID).Return(nil, uuid.Nil, sql.ErrNoRows)
		cartRepo.On("GetCartWithItems", mock.Anything, userID).Return(nil, sql.ErrNoRows)

		// Act
		result, err := svc.RemoveItem(context.Background(), userID, itemID)

		// Assert: removing a line that is already gone is a no-op success
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		cartRepo.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Foreign Item", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := setupCartServiceTest(t)
		userID := uuid.New()
		itemID := uuid.New()
		item := &models.CartItem{ID: itemID, Product: &models.Product{}}

		cartRepo.On("GetItem", mock.Anything, itemID).Return(item, uuid.New(), nil)

		// Act
		result, err := svc.RemoveItem(context.Background(), userID, itemID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		cartRepo.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything)
	})
}
