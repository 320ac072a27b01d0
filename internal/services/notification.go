package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/areejrazzaq/shopping-cart/internal/models"
	repository "github.com/areejrazzaq/shopping-cart/internal/repositories"
	"github.com/areejrazzaq/shopping-cart/pkg/sendgrid"
)

// NotificationService implements Notifier. It reacts to storefront signals
// after the fact; it holds no state the checkout transaction depends on.
type NotificationService struct {
	productRepo       repository.ProductRepository
	email             sendgrid.EmailService
	adminEmail        string
	lowStockThreshold int
}

func NewNotificationService(productRepo repository.ProductRepository, email sendgrid.EmailService, adminEmail string, lowStockThreshold int) *NotificationService {
	return &NotificationService{
		productRepo:       productRepo,
		email:             email,
		adminEmail:        adminEmail,
		lowStockThreshold: lowStockThreshold,
	}
}

// OrderCompleted logs the committed order and scans its products for low
// stock, alerting the admin when any fell to the threshold or below.
func (n *NotificationService) OrderCompleted(ctx context.Context, order *models.Order) {

	slog.Info("Order completed",
		slog.String("orderId", order.ID.String()),
		slog.String("userId", order.UserID.String()),
		slog.Int("items", len(order.Items)),
		slog.Float64("total", models.OrderTotal(order.Items)))

	var lowStock []models.Product

	for _, item := range order.Items {

		product, err := n.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				slog.Warn("Low stock scan failed for product",
					slog.String("productId", item.ProductID.String()),
					slog.String("error", err.Error()))
			}

			continue
		}

		if product.StockQuantity <= n.lowStockThreshold {
			lowStock = append(lowStock, *product)
		}
	}

	if len(lowStock) > 0 {
		n.LowStockDetected(ctx, lowStock)
	}
}

// LowStockDetected emails the admin a stock alert. Failures are logged and
// swallowed; alerting never affects the operation that raised the signal.
func (n *NotificationService) LowStockDetected(ctx context.Context, products []models.Product) {

	if len(products) == 0 {
		return
	}

	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}

	slog.Info("Sending low stock alert to admin", slog.String("products", strings.Join(names, ", ")))

	if n.adminEmail == "" {
		return
	}

	var sb strings.Builder

	sb.WriteString("The following products are running low on stock:\n\n")

	for _, p := range products {
		fmt.Fprintf(&sb, "- %s: %d remaining\n", p.Name, p.StockQuantity)
	}

	err := n.email.Send(ctx, &sendgrid.Email{
		To:      n.adminEmail,
		Subject: "Low stock alert",
		Content: sb.String(),
	})
	if err != nil {
		slog.Error("Failed to send low stock alert", slog.String("error", err.Error()))
	}
}
