package handlers

import (
	"log/slog"
	"net/http"

	"github.com/areejrazzaq/shopping-cart/internal/api/middleware"
	"github.com/areejrazzaq/shopping-cart/internal/errors"
	"github.com/areejrazzaq/shopping-cart/internal/models"
	service "github.com/areejrazzaq/shopping-cart/internal/services"
	"github.com/areejrazzaq/shopping-cart/internal/utils"
	"github.com/areejrazzaq/shopping-cart/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Cart access attempt without identity")
			response.Error(w, errors.UnauthenticatedError("Authentication required"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to load cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Add to cart attempt without identity")
			response.Error(w, errors.UnauthenticatedError("Authentication required"))
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to add item to cart",
				slog.String("productId", req.ProductID.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateItemQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Cart update attempt without identity")
			response.Error(w, errors.UnauthenticatedError("Authentication required"))
			return
		}

		itemID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid cart item id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart update input")
			return
		}

		cart, err := h.cartService.UpdateItemQuantity(r.Context(), claims.UserID, itemID, &req)
		if err != nil {
			logger.Error("Failed to update cart item",
				slog.String("itemId", itemID.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart item updated", slog.String("itemId", itemID.String()), slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Cart remove attempt without identity")
			response.Error(w, errors.UnauthenticatedError("Authentication required"))
			return
		}

		itemID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid cart item id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, itemID)
		if err != nil {
			logger.Error("Failed to remove cart item",
				slog.String("itemId", itemID.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart item removed", slog.String("itemId", itemID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}
