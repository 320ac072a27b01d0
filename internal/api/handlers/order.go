package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/areejrazzaq/shopping-cart/internal/api/middleware"
	appErrors "github.com/areejrazzaq/shopping-cart/internal/errors"
	"github.com/areejrazzaq/shopping-cart/internal/models"
	repository "github.com/areejrazzaq/shopping-cart/internal/repositories"
	"github.com/areejrazzaq/shopping-cart/internal/utils"
	"github.com/areejrazzaq/shopping-cart/internal/utils/response"
)

// OrderHandler exposes read-only order history. Orders are written only by
// checkout; there is no update or delete surface.
type OrderHandler struct {
	orderRepo repository.OrderRepository
}

func NewOrderHandler(orderRepo repository.OrderRepository) *OrderHandler {
	return &OrderHandler{orderRepo: orderRepo}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Order access attempt without identity")
			response.Error(w, appErrors.UnauthenticatedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		order, err := h.orderRepo.GetOrderByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.Error(w, appErrors.NotFoundError("Order not found"))
				return
			}

			logger.Error("Failed to get order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, appErrors.DatabaseError("Failed to load order"))
			return
		}

		if order.UserID != claims.UserID {
			logger.Warn("Attempted to access another user's order", slog.String("orderId", id.String()))
			response.Error(w, appErrors.UnauthorizedError("You don't have permission to access this order"))
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Order list attempt without identity")
			response.Error(w, appErrors.UnauthenticatedError("Authentication required"))
			return
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		orders, total, err := h.orderRepo.ListOrdersByCustomer(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, appErrors.DatabaseError("Failed to list orders"))
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
