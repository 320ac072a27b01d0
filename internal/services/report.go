package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	appErrors "github.com/areejrazzaq/shopping-cart/internal/errors"
	"github.com/areejrazzaq/shopping-cart/internal/models"
	repository "github.com/areejrazzaq/shopping-cart/internal/repositories"
	"github.com/areejrazzaq/shopping-cart/pkg/sendgrid"
	"github.com/google/uuid"
)

type ReportService interface {
	SendDailyReport(ctx context.Context) (*models.DailyOrderReport, error)
}

type reportService struct {
	orderRepo  repository.OrderRepository
	email      sendgrid.EmailService
	adminEmail string
}

func NewReportService(orderRepo repository.OrderRepository, email sendgrid.EmailService, adminEmail string) ReportService {
	return &reportService{orderRepo: orderRepo, email: email, adminEmail: adminEmail}
}

// SendDailyReport aggregates the last 24 hours of orders and mails the
// summary to the admin.
func (s *reportService) SendDailyReport(ctx context.Context) (*models.DailyOrderReport, error) {

	to := time.Now()
	from := to.Add(-24 * time.Hour)

	orders, err := s.orderRepo.ListOrdersSince(ctx, from)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load orders for report").WithError(err)
	}

	report := &models.DailyOrderReport{
		From:        from,
		To:          to,
		TotalOrders: len(orders),
	}

	buyers := make(map[uuid.UUID]struct{})

	for _, order := range orders {

		report.TotalAmount += models.OrderTotal(order.Items)

		for _, item := range order.Items {
			report.TotalUnits += item.Quantity
		}

		buyers[order.UserID] = struct{}{}
	}

	report.UniqueBuyers = len(buyers)

	slog.Info("Sending daily order report to admin",
		slog.Int("total_orders", report.TotalOrders),
		slog.Float64("total_amount", report.TotalAmount),
		slog.Int("total_units", report.TotalUnits),
		slog.Int("unique_buyers", report.UniqueBuyers))

	if s.adminEmail == "" {
		return report, nil
	}

	content := fmt.Sprintf(
		"Daily order report (%s - %s)\n\nOrders placed: %d\nTotal revenue: %.2f\nUnits sold: %d\nUnique buyers: %d\n",
		from.Format(time.RFC822), to.Format(time.RFC822),
		report.TotalOrders, report.TotalAmount, report.TotalUnits, report.UniqueBuyers,
	)

	err = s.email.Send(ctx, &sendgrid.Email{
		To:      s.adminEmail,
		Subject: "Daily order report",
		Content: content,
	})
	if err != nil {
		slog.Error("Failed to send daily order report", slog.String("error", err.Error()))
		return report, appErrors.InternalError("Report generated but email delivery failed").WithError(err)
	}

	return report, nil
}
