package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/nexus-shop/internal/app/handlers"
	"github.com/linemk/nexus-shop/internal/domain/models"
	"github.com/linemk/nexus-shop/internal/lib/currency"
	"github.com/linemk/nexus-shop/internal/notify"
	"github.com/linemk/nexus-shop/internal/service"
	"github.com/linemk/nexus-shop/internal/storage"
	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// fakeCheckout — управляемая реализация CheckoutService для ручек
type fakeCheckout struct {
	result *service.CheckoutResult
	err    error
	status service.PaymentStatus
}

func (f *fakeCheckout) Submit(_ context.Context, _, _ string, _ service.OrderDraft) (*service.CheckoutResult, error) {
	return f.result, f.err
}

func (f *fakeCheckout) Status(string) (service.PaymentStatus, string) {
	if f.result != nil {
		return f.status, f.result.OrderID
	}
	return f.status, ""
}

func newStorefrontRouter(t *testing.T) *chi.Mux {
	t.Helper()
	ctx := context.Background()
	log := testLogger()

	productRepo, err := storage.NewProductRepository(ctx, storage.NewMemoryKV(), storage.SeedProducts())
	assert.NoError(t, err)
	cartRepo := storage.NewCartRepository(storage.NewMemoryKV())

	catalog := service.NewCatalogService(log, productRepo)
	carts := service.NewCartService(log, cartRepo, productRepo)

	r := chi.NewRouter()
	r.Get("/api/products", handlers.ListProductsHandler(log, catalog))
	r.Get("/api/products/{id}", handlers.GetProductHandler(log, catalog))
	r.Get("/api/products/{id}/related", handlers.RelatedProductsHandler(log, catalog))
	r.Group(func(r chi.Router) {
		r.Use(handlers.SessionMiddleware)
		r.Get("/api/cart", handlers.GetCartHandler(log, carts))
		r.Post("/api/cart/items", handlers.AddCartItemHandler(log, carts))
		r.Put("/api/cart/items/{productId}", handlers.UpdateCartItemHandler(log, carts))
		r.Delete("/api/cart/items/{productId}", handlers.RemoveCartItemHandler(log, carts))
		r.Delete("/api/cart", handlers.ClearCartHandler(log, carts))
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target, sessionID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if sessionID != "" {
		req.Header.Set(handlers.SessionHeader, sessionID)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestLoginHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	log := testLogger()
	auth := service.NewAuthService(log, storage.NewUserRepository(storage.SeedUsers()), time.Hour)
	handler := handlers.LoginHandler(log, auth)

	t.Run("known email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"admin@nexus.com"}`))
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp handlers.LoginResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "u1", resp.User.ID)
		assert.Equal(t, models.RoleAdmin, resp.User.Role)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("unknown email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"nobody@nexus.com"}`))
		rr := httptest.NewRecorder()
		handler(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
		rr := httptest.NewRecorder()
		handler(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("broken json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{`))
		rr := httptest.NewRecorder()
		handler(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestProductHandlers(t *testing.T) {
	router := newStorefrontRouter(t)

	t.Run("list", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/products", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		var products []*models.Product
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &products))
		assert.Len(t, products, 6)
	})

	t.Run("get", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/products/1", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		var product models.Product
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &product))
		assert.Equal(t, "Pro Noise-Cancelling Headphones", product.Name)
	})

	t.Run("get unknown", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/products/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("related for unknown product is empty list", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/products/nope/related", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]\n", rr.Body.String())
	})
}

func TestCartHandlers(t *testing.T) {
	router := newStorefrontRouter(t)
	const session = "sess-1"

	t.Run("session header is issued when absent", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/cart", "", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(handlers.SessionHeader))
	})

	t.Run("add item", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/cart/items", session,
			handlers.AddCartItemRequest{ProductID: "1", VariantID: "v1_2"})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, session, rr.Header().Get(handlers.SessionHeader))

		var view service.CartView
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
		assert.Len(t, view.Items, 1)
		// базовая цена 299.99 плюс модификатор варианта Silver +10
		assert.InDelta(t, 309.99, view.Subtotal, 0.0001)
	})

	t.Run("add unknown product", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/cart/items", session,
			handlers.AddCartItemRequest{ProductID: "nope"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("add unknown variant", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/cart/items", session,
			handlers.AddCartItemRequest{ProductID: "1", VariantID: "v9_9"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPut, "/api/cart/items/1", session,
			handlers.UpdateCartItemRequest{Quantity: 0, VariantID: "v1_2"})
		assert.Equal(t, http.StatusOK, rr.Code)

		var view service.CartView
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
		assert.Empty(t, view.Items)
	})

	t.Run("update unknown line", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPut, "/api/cart/items/1", session,
			handlers.UpdateCartItemRequest{Quantity: 2})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("clear", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/cart/items", session,
			handlers.AddCartItemRequest{ProductID: "2"})
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = doJSON(t, router, http.MethodDelete, "/api/cart", session, nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)

		rr = doJSON(t, router, http.MethodGet, "/api/cart", session, nil)
		var view service.CartView
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
		assert.Empty(t, view.Items)
		assert.Zero(t, view.Subtotal)
	})
}

func newCheckoutRouter(fake *fakeCheckout) *chi.Mux {
	log := testLogger()
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(handlers.SessionMiddleware)
		r.Post("/api/checkout", handlers.CheckoutHandler(log, fake))
		r.Get("/api/checkout/status", handlers.CheckoutStatusHandler(log, fake))
	})
	return r
}

func checkoutBody() service.OrderDraft {
	return service.OrderDraft{
		FullName:   "John Doe",
		Email:      "user@nexus.com",
		Address:    "123 Main St",
		City:       "New York",
		Zip:        "10001",
		CardNumber: "4242424242424242",
		Expiry:     "12/27",
		CVC:        "123",
	}
}

func TestCheckoutHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeCheckout{result: &service.CheckoutResult{
			OrderID: "ord_42",
			Gateway: models.GatewayStripe,
			Status:  service.PaymentSuccess,
		}}
		rr := doJSON(t, newCheckoutRouter(fake), http.MethodPost, "/api/checkout", "s1", checkoutBody())

		assert.Equal(t, http.StatusCreated, rr.Code)
		var result service.CheckoutResult
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.Equal(t, "ord_42", result.OrderID)
		assert.Equal(t, models.GatewayStripe, result.Gateway)
	})

	t.Run("validation errors map to 422", func(t *testing.T) {
		fake := &fakeCheckout{err: &service.ValidationError{Fields: map[string]string{
			"email":  "Invalid email address",
			"expiry": "Format MM/YY",
		}}}
		rr := doJSON(t, newCheckoutRouter(fake), http.MethodPost, "/api/checkout", "s1", checkoutBody())

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid email address", resp.Errors["email"])
		assert.Equal(t, "Format MM/YY", resp.Errors["expiry"])
	})

	t.Run("in-flight attempt maps to 409", func(t *testing.T) {
		fake := &fakeCheckout{err: fmt.Errorf("submit: %w", service.ErrCheckoutInProgress)}
		rr := doJSON(t, newCheckoutRouter(fake), http.MethodPost, "/api/checkout", "s1", checkoutBody())
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("empty cart maps to 400", func(t *testing.T) {
		fake := &fakeCheckout{err: fmt.Errorf("submit: %w", service.ErrEmptyCart)}
		rr := doJSON(t, newCheckoutRouter(fake), http.MethodPost, "/api/checkout", "s1", checkoutBody())
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("order creation failure maps to 502", func(t *testing.T) {
		fake := &fakeCheckout{err: fmt.Errorf("submit: %w", service.ErrOrderCreation)}
		rr := doJSON(t, newCheckoutRouter(fake), http.MethodPost, "/api/checkout", "s1", checkoutBody())
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})

	t.Run("status", func(t *testing.T) {
		fake := &fakeCheckout{
			result: &service.CheckoutResult{OrderID: "ord_42"},
			status: service.PaymentSuccess,
		}
		rr := doJSON(t, newCheckoutRouter(fake), http.MethodGet, "/api/checkout/status", "s1", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp handlers.CheckoutStatusResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, service.PaymentSuccess, resp.Status)
		assert.Equal(t, "ord_42", resp.OrderID)
	})
}

func TestMetaHandlers(t *testing.T) {
	log := testLogger()

	t.Run("health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handlers.HealthHandler()(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("settings expose exchange rates", func(t *testing.T) {
		conv := currency.NewConverter(map[string]float64{"USD": 1, "EUR": 0.92, "TRY": 32.50})
		rr := httptest.NewRecorder()
		handlers.SettingsHandler(log, conv)(rr, httptest.NewRequest(http.MethodGet, "/api/settings", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			ExchangeRates map[string]float64 `json:"exchangeRates"`
		}
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 0.92, resp.ExchangeRates["EUR"])
	})

	t.Run("notifications drain once", func(t *testing.T) {
		sink := notify.NewMemory()
		sink.Notify("s1", "Order confirmed: ord_42", notify.LevelSuccess)

		router := chi.NewRouter()
		router.Group(func(r chi.Router) {
			r.Use(handlers.SessionMiddleware)
			r.Get("/api/notifications", handlers.NotificationsHandler(log, sink))
		})

		rr := doJSON(t, router, http.MethodGet, "/api/notifications", "s1", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		var notices []notify.Notice
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &notices))
		assert.Len(t, notices, 1)
		assert.Equal(t, "Order confirmed: ord_42", notices[0].Message)

		// повторный опрос после выборки пуст
		rr = doJSON(t, router, http.MethodGet, "/api/notifications", "s1", nil)
		var drained []notify.Notice
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &drained))
		assert.Empty(t, drained)
	})
}
