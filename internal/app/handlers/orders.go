package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/nexus-shop/internal/domain/models"
	"github.com/linemk/nexus-shop/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/nexus-shop/internal/service"
)

// CreateOrderHandler обрабатывает запрос POST /api/orders —
// граница сервиса создания заказов (её использует и оркестратор оплаты)
func CreateOrderHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		var in service.CreateOrderInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		order, err := orders.Create(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyOrder),
				errors.Is(err, service.ErrInvalidTotal),
				errors.Is(err, service.ErrUnknownGateway):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				logger.Error("failed to create order", slog.Any("error", err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(order); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// ListOrdersHandler обрабатывает запрос GET /api/orders.
// Пользователь видит свои заказы, администратор — все
func ListOrdersHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		role, _ := jwtmiddleware.RoleFromContext(r.Context())

		list, err := orders.ListOrders(r.Context(), userID, role == models.RoleAdmin)
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []*models.Order{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(list); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}
