package service

import (
	"context"
	"database/sql"
	"errors"

	appErrors "github.com/areejrazzaq/shopping-cart/internal/errors"
	"github.com/areejrazzaq/shopping-cart/internal/models"
	repository "github.com/areejrazzaq/shopping-cart/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartResponse, error)
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartResponse, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartResponse, error)
}

type cartService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	imageBaseURL string
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, imageBaseURL string) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo, imageBaseURL: imageBaseURL}
}

// AddItem puts a product into the caller's cart, creating the cart on first
// use. Adding a product that is already a line increments that line instead
// of duplicating it; the combined quantity may not exceed current stock.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartResponse, error) {

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ValidationError("Product does not exist").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to load product").WithError(err)
	}

	if product.StockQuantity < quantity {
		return nil, appErrors.InsufficientStockError(models.StockShortage{
			ProductID: product.ID,
			Requested: quantity,
			Available: product.StockQuantity,
		})
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to open cart").WithError(err)
	}

	if err := s.cartRepo.UpsertItem(ctx, cart.ID, product.ID, quantity, product.StockQuantity); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, appErrors.InsufficientStockError(models.StockShortage{
				ProductID: product.ID,
				Requested: quantity,
				Available: product.StockQuantity,
			}).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

// GetCart returns the cart priced against current product prices. A user
// with no cart gets an empty view, not an error.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {

	cart, err := s.cartRepo.GetCartWithItems(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.CartResponse{Items: []models.CartItemResponse{}}, nil
		}

		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	return s.toResponse(cart), nil
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartResponse, error) {

	item, ownerID, err := s.cartRepo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same rejection as a foreign item: existence is not leaked.
			return nil, appErrors.UnauthorizedError("You don't have permission to modify this cart item")
		}

		return nil, appErrors.DatabaseError("Failed to load cart item").WithError(err)
	}

	if ownerID != userID {
		return nil, appErrors.UnauthorizedError("You don't have permission to modify this cart item")
	}

	if req.Quantity > item.Product.StockQuantity {
		return nil, appErrors.InsufficientStockError(models.StockShortage{
			ProductID: item.ProductID,
			Requested: req.Quantity,
			Available: item.Product.StockQuantity,
		})
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, itemID, req.Quantity); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart item").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem deletes a line the caller owns. Removing a line that no longer
// exists is a no-op success.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartResponse, error) {

	_, ownerID, err := s.cartRepo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.GetCart(ctx, userID)
		}

		return nil, appErrors.DatabaseError("Failed to load cart item").WithError(err)
	}

	if ownerID != userID {
		return nil, appErrors.UnauthorizedError("You don't have permission to modify this cart item")
	}

	if err := s.cartRepo.DeleteItem(ctx, itemID); err != nil {
		return nil, appErrors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

func (s *cartService) toResponse(cart *models.Cart) *models.CartResponse {

	items := make([]models.CartItemResponse, 0, len(cart.Items))

	for _, item := range cart.Items {

		entry := models.CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}

		if item.Product != nil {
			entry.Product = models.ProductSummary{
				ID:            item.Product.ID,
				Name:          item.Product.Name,
				Image:         item.Product.Image,
				ImageURL:      models.ImageURL(s.imageBaseURL, item.Product.Image),
				Price:         item.Product.Price,
				StockQuantity: item.Product.StockQuantity,
			}
		}

		items = append(items, entry)
	}

	cartID := cart.ID

	return &models.CartResponse{
		CartID:   &cartID,
		Items:    items,
		Subtotal: models.Subtotal(cart.Items),
	}
}
