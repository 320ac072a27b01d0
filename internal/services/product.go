package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/areejrazzaq/shopping-cart/internal/cache"
	appErrors "github.com/areejrazzaq/shopping-cart/internal/errors"
	"github.com/areejrazzaq/shopping-cart/internal/models"
	repository "github.com/areejrazzaq/shopping-cart/internal/repositories"
	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
}

type productService struct {
	repo     repository.ProductRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache, cacheTTL time.Duration) ProductService {
	return &productService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Image:         req.Image,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

// UpdateProduct applies the fields present in the request and refreshes the
// cached entry so reads don't serve the stale price for a full TTL.
func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to load product").WithError(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Price != nil {
		product.Price = *req.Price
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	if err := s.cache.Set(ctx, productCacheKey(id), product, s.cacheTTL); err != nil {
		slog.Warn("Product cache refresh failed", slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	key := productCacheKey(id)

	var cached models.Product

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("Product cache read failed", slog.String("error", err.Error()))
	}

	if found {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to load product").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, s.cacheTTL); err != nil {
		slog.Warn("Product cache write failed", slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 20
	}

	products, total, err := s.repo.ListProducts(ctx, page, size)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, total, nil
}

func productCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}
