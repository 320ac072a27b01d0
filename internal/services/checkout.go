package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	appErrors "github.com/areejrazzaq/shopping-cart/internal/errors"
	"github.com/areejrazzaq/shopping-cart/internal/metrics"
	"github.com/areejrazzaq/shopping-cart/internal/models"
	repository "github.com/areejrazzaq/shopping-cart/internal/repositories"
	"github.com/google/uuid"
)

// Notifier receives post-checkout signals. Dispatch is best-effort and runs
// outside the transaction: it must never fire for an order that rolled back,
// and its failures never fail a checkout.
type Notifier interface {
	OrderCompleted(ctx context.Context, order *models.Order)
	LowStockDetected(ctx context.Context, products []models.Product)
}

type CheckoutService interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*models.CheckoutResponse, error)
}

type checkoutService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	tx          repository.TxManager
	notifier    Notifier
}

func NewCheckoutService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository, tx repository.TxManager, notifier Notifier) CheckoutService {
	return &checkoutService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		tx:          tx,
		notifier:    notifier,
	}
}

// Checkout converts the caller's cart into an immutable order, or changes
// nothing at all.
//
// It runs in two passes. The validation pass compares every line against the
// stock read with the cart and rejects the whole checkout with the full list
// of offending products; nothing has been written at that point. The commit
// pass then re-checks each line through the conditional decrement inside one
// transaction, because the validation read is stale the moment it returns:
// a concurrent checkout may take the stock between the two passes, and the
// per-item decrement is what actually prevents overselling.
func (s *checkoutService) Checkout(ctx context.Context, userID uuid.UUID) (*models.CheckoutResponse, error) {

	cart, err := s.cartRepo.GetCartWithItems(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.ObserveCheckout(metrics.CheckoutEmptyCart)
			return nil, appErrors.EmptyCartError()
		}

		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		metrics.ObserveCheckout(metrics.CheckoutEmptyCart)
		return nil, appErrors.EmptyCartError()
	}

	// Validation pass: collect every offending line, not just the first.
	shortages := []models.StockShortage{}
	shortProducts := []models.Product{}

	for _, item := range cart.Items {
		if item.Product == nil {
			return nil, appErrors.InternalError("Cart item is missing its product")
		}

		if item.Quantity > item.Product.StockQuantity {
			shortages = append(shortages, models.StockShortage{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: item.Product.StockQuantity,
			})
			shortProducts = append(shortProducts, *item.Product)
		}
	}

	if len(shortages) > 0 {
		metrics.ObserveCheckout(metrics.CheckoutInsufficientStock)
		s.dispatch(ctx, func(bgCtx context.Context) {
			s.notifier.LowStockDetected(bgCtx, shortProducts)
		})

		return nil, appErrors.InsufficientStockError(shortages...)
	}

	order := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
	}

	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			SalePrice: item.Product.Price, // frozen here; later price changes never touch it
			Quantity:  item.Quantity,
		})
	}

	// Commit pass: order, snapshots, decrements and cart removal land
	// together or not at all.
	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {

		if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
			return err
		}

		for _, item := range cart.Items {
			if err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return s.cartRepo.ClearCart(ctx, tx, cart.ID)
	})

	if err != nil {
		logger := slog.Default()

		if errors.Is(err, repository.ErrInsufficientStock) {
			// Lost the race between validation and commit. Everything
			// rolled back; report it as out of stock, not as a crash.
			metrics.ObserveStockConflict()
			metrics.ObserveCheckout(metrics.CheckoutInsufficientStock)
			logger.Warn("Checkout lost a stock race",
				slog.String("userId", userID.String()),
				slog.String("error", err.Error()))

			return nil, appErrors.InsufficientStockError().WithError(err).
				WithDetail("a concurrent purchase took the remaining stock")
		}

		metrics.ObserveCheckout(metrics.CheckoutFailed)
		logger.Error("Checkout transaction failed",
			slog.String("userId", userID.String()),
			slog.String("orderId", order.ID.String()),
			slog.String("error", err.Error()))

		return nil, appErrors.TransactionFailedError("An error occurred while processing your order. Please try again.").WithError(err)
	}

	total := models.OrderTotal(order.Items)

	metrics.ObserveCheckout(metrics.CheckoutSuccess)
	metrics.ObserveOrderTotal(total)

	s.dispatch(ctx, func(bgCtx context.Context) {
		s.notifier.OrderCompleted(bgCtx, order)
	})

	return &models.CheckoutResponse{
		OrderID:    order.ID,
		OrderTotal: total,
	}, nil
}

// dispatch runs a notification outside the request lifecycle so a slow or
// failing dispatcher cannot gate the checkout result.
func (s *checkoutService) dispatch(ctx context.Context, fn func(context.Context)) {

	logger := slog.Default()

	go func() {
		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				logger.Error("Notification dispatch panicked", slog.Any("panic", r))
			}
		}()

		fn(bgCtx)
	}()
}
