package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/nexus-shop/internal/service"
	"github.com/linemk/nexus-shop/internal/storage"
)

// AddCartItemRequest — тело POST /api/cart/items
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId,omitempty"`
}

// UpdateCartItemRequest — тело PUT /api/cart/items/{productId}
type UpdateCartItemRequest struct {
	Quantity  int    `json:"quantity"`
	VariantID string `json:"variantId,omitempty"`
}

func writeCart(w http.ResponseWriter, logger *slog.Logger, view *service.CartView) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func cartError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, storage.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrCartItemNotFound):
		http.Error(w, "cart item not found", http.StatusNotFound)
	case errors.Is(err, service.ErrVariantNotFound):
		http.Error(w, "product variant not found", http.StatusBadRequest)
	default:
		logger.Error("cart operation failed", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// GetCartHandler обрабатывает запрос GET /api/cart
func GetCartHandler(log *slog.Logger, carts service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCartHandler"
		logger := log.With(slog.String("op", op))

		sessionID, ok := SessionFromContext(r.Context())
		if !ok {
			http.Error(w, "session is required", http.StatusBadRequest)
			return
		}

		view, err := carts.GetCart(r.Context(), sessionID)
		if err != nil {
			cartError(w, logger, err)
			return
		}
		writeCart(w, logger, view)
	}
}

// AddCartItemHandler обрабатывает запрос POST /api/cart/items
func AddCartItemHandler(log *slog.Logger, carts service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddCartItemHandler"
		logger := log.With(slog.String("op", op))

		sessionID, ok := SessionFromContext(r.Context())
		if !ok {
			http.Error(w, "session is required", http.StatusBadRequest)
			return
		}

		var req AddCartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		view, err := carts.AddItem(r.Context(), sessionID, req.ProductID, req.VariantID)
		if err != nil {
			cartError(w, logger, err)
			return
		}
		writeCart(w, logger, view)
	}
}

// UpdateCartItemHandler обрабатывает запрос PUT /api/cart/items/{productId}.
// Количество <= 0 удаляет позицию
func UpdateCartItemHandler(log *slog.Logger, carts service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCartItemHandler"
		logger := log.With(slog.String("op", op))

		sessionID, ok := SessionFromContext(r.Context())
		if !ok {
			http.Error(w, "session is required", http.StatusBadRequest)
			return
		}
		productID := chi.URLParam(r, "productId")

		var req UpdateCartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		view, err := carts.UpdateQuantity(r.Context(), sessionID, productID, req.Quantity, req.VariantID)
		if err != nil {
			cartError(w, logger, err)
			return
		}
		writeCart(w, logger, view)
	}
}

// RemoveCartItemHandler обрабатывает запрос DELETE /api/cart/items/{productId}?variantId=
func RemoveCartItemHandler(log *slog.Logger, carts service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveCartItemHandler"
		logger := log.With(slog.String("op", op))

		sessionID, ok := SessionFromContext(r.Context())
		if !ok {
			http.Error(w, "session is required", http.StatusBadRequest)
			return
		}
		productID := chi.URLParam(r, "productId")
		variantID := r.URL.Query().Get("variantId")

		view, err := carts.RemoveItem(r.Context(), sessionID, productID, variantID)
		if err != nil {
			cartError(w, logger, err)
			return
		}
		writeCart(w, logger, view)
	}
}

// ClearCartHandler обрабатывает запрос DELETE /api/cart
func ClearCartHandler(log *slog.Logger, carts service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ClearCartHandler"
		logger := log.With(slog.String("op", op))

		sessionID, ok := SessionFromContext(r.Context())
		if !ok {
			http.Error(w, "session is required", http.StatusBadRequest)
			return
		}

		if err := carts.ClearCart(r.Context(), sessionID); err != nil {
			cartError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
