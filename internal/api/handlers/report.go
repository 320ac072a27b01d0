package handlers

import (
	"log/slog"
	"net/http"

	"github.com/areejrazzaq/shopping-cart/internal/api/middleware"
	service "github.com/areejrazzaq/shopping-cart/internal/services"
	"github.com/areejrazzaq/shopping-cart/internal/utils/response"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TriggerDailyReport runs the daily report on demand, outside its schedule.
func (h *ReportHandler) TriggerDailyReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		report, err := h.reportService.SendDailyReport(r.Context())
		if err != nil {
			logger.Error("Failed to send daily report", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Daily report dispatched", slog.Int("totalOrders", report.TotalOrders))
		response.Success(w, http.StatusOK, report)
	}
}
