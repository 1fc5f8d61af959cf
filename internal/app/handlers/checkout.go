package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/nexus-shop/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/nexus-shop/internal/service"
)

// CheckoutStatusResponse — текущее состояние попытки оплаты сессии
type CheckoutStatusResponse struct {
	Status  service.PaymentStatus `json:"status"`
	OrderID string                `json:"orderId,omitempty"`
}

// CheckoutHandler обрабатывает запрос POST /api/checkout.
// Форма валидируется до запуска оркестратора; на ошибки валидации
// возвращается 422 с картой поле → сообщение. Повторная отправка,
// пока попытка в полёте, отклоняется с 409 и не ставится в очередь
func CheckoutHandler(log *slog.Logger, checkout service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutHandler"
		logger := log.With(slog.String("op", op))

		sessionID, ok := SessionFromContext(r.Context())
		if !ok {
			http.Error(w, "session is required", http.StatusBadRequest)
			return
		}

		var draft service.OrderDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		// userID берём из токена, если он есть; иначе гостевой заказ
		userID, _ := jwtmiddleware.FromContext(r.Context())

		result, err := checkout.Submit(r.Context(), sessionID, userID, draft)
		if err != nil {
			var verr *service.ValidationError
			switch {
			case errors.As(err, &verr):
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnprocessableEntity)
				if err := json.NewEncoder(w).Encode(map[string]interface{}{"errors": verr.Fields}); err != nil {
					logger.Error("failed to encode response", slog.Any("error", err))
				}
			case errors.Is(err, service.ErrCheckoutInProgress):
				http.Error(w, "checkout already in progress", http.StatusConflict)
			case errors.Is(err, service.ErrEmptyCart):
				http.Error(w, "cart is empty", http.StatusBadRequest)
			case errors.Is(err, service.ErrOrderCreation):
				http.Error(w, "payment failed", http.StatusBadGateway)
			default:
				logger.Error("checkout failed", slog.Any("error", err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// CheckoutStatusHandler обрабатывает запрос GET /api/checkout/status
func CheckoutStatusHandler(log *slog.Logger, checkout service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutStatusHandler"
		logger := log.With(slog.String("op", op))

		sessionID, ok := SessionFromContext(r.Context())
		if !ok {
			http.Error(w, "session is required", http.StatusBadRequest)
			return
		}

		status, orderID := checkout.Status(sessionID)
		resp := CheckoutStatusResponse{Status: status, OrderID: orderID}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}
