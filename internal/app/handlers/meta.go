package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/linemk/nexus-shop/internal/lib/currency"
	"github.com/linemk/nexus-shop/internal/notify"
)

// RootHandler обрабатывает запрос GET / — краткая карта API
func RootHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"message": "Nexus E-Commerce API",
			"version": "1.0.0",
			"endpoints": map[string]string{
				"auth":     "/api/auth/login",
				"products": "/api/products",
				"cart":     "/api/cart",
				"checkout": "/api/checkout",
				"orders":   "/api/orders",
				"admin":    "/api/admin/stats",
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// HealthHandler обрабатывает запрос GET /health
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// SettingsHandler обрабатывает запрос GET /api/settings — демо-курсы валют
func SettingsHandler(log *slog.Logger, conv *currency.Converter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SettingsHandler"
		logger := log.With(slog.String("op", op))

		resp := map[string]interface{}{
			"baseCurrency":  "USD",
			"exchangeRates": conv.Rates(),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// NotificationsHandler обрабатывает запрос GET /api/notifications —
// забирает накопленные уведомления сессии (буфер при этом очищается)
func NotificationsHandler(log *slog.Logger, sink *notify.Memory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.NotificationsHandler"
		logger := log.With(slog.String("op", op))

		sessionID, ok := SessionFromContext(r.Context())
		if !ok {
			http.Error(w, "session is required", http.StatusBadRequest)
			return
		}

		notices := sink.Drain(sessionID)
		if notices == nil {
			notices = []notify.Notice{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(notices); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}
