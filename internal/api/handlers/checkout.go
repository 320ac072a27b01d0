package handlers

import (
	"log/slog"
	"net/http"

	"github.com/areejrazzaq/shopping-cart/internal/api/middleware"
	"github.com/areejrazzaq/shopping-cart/internal/errors"
	"github.com/areejrazzaq/shopping-cart/internal/models"
	service "github.com/areejrazzaq/shopping-cart/internal/services"
	"github.com/areejrazzaq/shopping-cart/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout converts the caller's cart into an order. The request carries no
// body: the cart is the input, the identity comes from the token.
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Checkout attempt without identity")
			response.Error(w, errors.UnauthenticatedError("Authentication required"))
			return
		}

		result, err := h.checkoutService.Checkout(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed successfully",
			slog.String("orderId", result.OrderID.String()),
			slog.Float64("orderTotal", result.OrderTotal))
		response.Success(w, http.StatusCreated, result)
	}
}
