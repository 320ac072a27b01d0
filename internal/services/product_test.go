package service_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	appErrors "github.com/areejrazzaq/shopping-cart/internal/errors"
	"github.com/areejrazzaq/shopping-cart/internal/models"
	repomocks "github.com/areejrazzaq/shopping-cart/internal/repositories/mocks"
	service "github.com/areejrazzaq/shopping-cart/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeCache stores marshalled entries in memory, ignoring TTLs.
type fakeCache struct {
	entries map[string][]byte
	getErr  error
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string, value any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}

	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(data, value)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.entries[key] = data

	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) Close() error { return nil }

func setupProductServiceTest(t *testing.T) (service.ProductService, *repomocks.ProductRepository, *fakeCache) {
	t.Helper()

	repo := repomocks.NewProductRepository()
	cache := newFakeCache()
	svc := service.NewProductService(repo, cache, 5*time.Minute)

	return svc, repo, cache
}

func TestCreateProduct_Service(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		svc, repo, _ := setupProductServiceTest(t)
		req := &models.CreateProductRequest{Name: "Converse Chuck 70", Image: "products/chuck70.jpg", Price: 85.00, StockQuantity: 30}

		repo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil)

		// Act
		product, err := svc.CreateProduct(context.Background(), req)

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.Equal(t, req.Name, product.Name)
		assert.Equal(t, req.Price, product.Price)
		assert.Equal(t, req.StockQuantity, product.StockQuantity)
		repo.AssertExpectations(t)
	})
}

func TestUpdateProduct_Service(t *testing.T) {
	t.Run("Success - Partial Update Refreshes Cache", func(t *testing.T) {
		// Arrange
		svc, repo, cache := setupProductServiceTest(t)
		product := &models.Product{ID: uuid.New(), Name: "Vans Old Skool", Image: "products/oldskool.jpg", Price: 65.00, StockQuantity: 40}
		newPrice := 59.00

		repo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("UpdateProduct", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil)

		// Act: only the price is sent, other fields must survive
		updated, err := svc.UpdateProduct(context.Background(), product.ID, &models.UpdateProductRequest{Price: &newPrice})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Vans Old Skool", updated.Name)
		assert.Equal(t, 59.00, updated.Price)
		assert.Equal(t, 40, updated.StockQuantity, "Stock is never touched by a catalog update")

		// The cached entry now carries the new price, so a read right after
		// the update cannot serve the old one.
		cachedData, ok := cache.entries["product:"+product.ID.String()]
		require.True(t, ok, "Update should refresh the cache entry")

		var cached models.Product
		require.NoError(t, json.Unmarshal(cachedData, &cached))
		assert.Equal(t, 59.00, cached.Price)
		repo.AssertExpectations(t)
	})

	t.Run("Success - Cache Refresh Failure Is Ignored", func(t *testing.T) {
		// Arrange
		svc, repo, cache := setupProductServiceTest(t)
		cache.setErr = assert.AnError
		product := &models.Product{ID: uuid.New(), Name: "Saucony Jazz", Price: 80.00, StockQuantity: 11}
		newName := "Saucony Jazz Original"

		repo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("UpdateProduct", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil)

		// Act
		updated, err := svc.UpdateProduct(context.Background(), product.ID, &models.UpdateProductRequest{Name: &newName})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Saucony Jazz Original", updated.Name)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		svc, repo, _ := setupProductServiceTest(t)
		productID := uuid.New()
		newPrice := 10.00

		repo.On("GetProductByID", mock.Anything, productID).Return(nil, sql.ErrNoRows)

		// Act
		updated, err := svc.UpdateProduct(context.Background(), productID, &models.UpdateProductRequest{Price: &newPrice})

		// Assert
		require.Error(t, err)
		assert.Nil(t, updated)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		repo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
	})
}

func TestGetProduct_Service(t *testing.T) {
	t.Run("Success - Cache Miss Then Hit", func(t *testing.T) {
		// Arrange
		svc, repo, cache := setupProductServiceTest(t)
		product := &models.Product{ID: uuid.New(), Name: "New Balance 550", Price: 120.00, StockQuantity: 14}

		repo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()

		// Act: first call goes to the database and fills the cache
		first, err := svc.GetProduct(context.Background(), product.ID)
		require.NoError(t, err)

		// Second call must be served from the cache; the repository
		// expectation above only allows one call.
		second, err := svc.GetProduct(context.Background(), product.ID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Price, second.Price)
		assert.Contains(t, cache.entries, "product:"+product.ID.String())
		repo.AssertExpectations(t)
	})

	t.Run("Success - Cache Errors Are Ignored", func(t *testing.T) {
		// Arrange: a broken cache must degrade to database reads, not fail
		svc, repo, cache := setupProductServiceTest(t)
		cache.getErr = assert.AnError
		cache.setErr = assert.AnError
		product := &models.Product{ID: uuid.New(), Name: "Reebok Club C", Price: 70.00, StockQuantity: 9}

		repo.On("GetProductByID", mock.Anything, product.ID).Return(product, nil)

		// Act
		result, err := svc.GetProduct(context.Background(), product.ID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, product.ID, result.ID)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		svc, repo, _ := setupProductServiceTest(t)
		productID := uuid.New()

		repo.On("GetProductByID", mock.Anything, productID).Return(nil, sql.ErrNoRows)

		// Act
		result, err := svc.GetProduct(context.Background(), productID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, result)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestListProducts_Service(t *testing.T) {
	t.Run("Success - Defaults Applied", func(t *testing.T) {
		// Arrange
		svc, repo, _ := setupProductServiceTest(t)
		products := []*models.Product{{ID: uuid.New(), Name: "Asics Gel-Lyte III", Price: 110.00, StockQuantity: 6}}

		repo.On("ListProducts", mock.Anything, 1, 20).Return(products, 1, nil)

		// Act: out-of-range paging inputs fall back to page 1, size 20
		result, total, err := svc.ListProducts(context.Background(), 0, 500)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, result, 1)
		repo.AssertExpectations(t)
	})
}
