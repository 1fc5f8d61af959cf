package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const baseURL = "http://localhost:8080"

// LoginResponse структура ответа при аутентификации
type LoginResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

// Product – товар каталога в ответах API
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// CartView – содержимое корзины в ответах API
type CartView struct {
	Items []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	Subtotal float64 `json:"subtotal"`
}

// CheckoutResult – итог успешного оформления заказа
type CheckoutResult struct {
	OrderID string `json:"orderId"`
	Gateway string `json:"gateway"`
	Status  string `json:"status"`
}

func checkoutForm() map[string]string {
	return map[string]string{
		"fullName":   "John Doe",
		"email":      "user@nexus.com",
		"address":    "123 Main St",
		"city":       "New York",
		"zip":        "10001",
		"cardNumber": "4242424242424242",
		"expiry":     "12/27",
		"cvc":        "123",
	}
}

func doRequest(t *testing.T, method, path, sessionID string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, baseURL+path, &buf)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	assert.NoError(t, err)
	return resp
}

func loginUser(t *testing.T, email string) LoginResponse {
	reqBody := []byte(`{"email": "` + email + `"}`)
	resp, err := http.Post(baseURL+"/api/auth/login", "application/json", bytes.NewBuffer(reqBody))
	assert.NoError(t, err, "login request should not error")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "expected 200 OK for demo login")

	var loginResp LoginResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	assert.NotEmpty(t, loginResp.Token, "token should not be empty")
	return loginResp
}

// сценарий успешной демо-аутентификации по email
func TestLogin(t *testing.T) {
	resp := loginUser(t, "user@nexus.com")
	assert.Equal(t, "user", resp.User.Role)
}

// сценарий с неизвестным email
func TestLoginUnknownEmail(t *testing.T) {
	reqBody := []byte(`{"email": "nobody@nexus.com"}`)
	resp, err := http.Post(baseURL+"/api/auth/login", "application/json", bytes.NewBuffer(reqBody))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "expected 401 for unknown email")
}

// сценарий получения каталога
func TestListProducts(t *testing.T) {
	resp, err := http.Get(baseURL + "/api/products")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var products []Product
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	assert.NotEmpty(t, products, "catalog should not be empty")
}

// сценарий с неизвестным товаром
func TestGetProductNotFound(t *testing.T) {
	resp, err := http.Get(baseURL + "/api/products/nonexistent")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "expected 404 for unknown product")
}

// сценарий работы с корзиной: добавление, изменение количества, удаление
func TestCartFlow(t *testing.T) {
	sessionID := uuid.NewString()

	resp := doRequest(t, http.MethodPost, "/api/cart/items", sessionID, map[string]string{"productId": "1"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, sessionID, resp.Header.Get("X-Session-ID"), "session id should be echoed back")

	var view CartView
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Len(t, view.Items, 1)
	assert.Greater(t, view.Subtotal, 0.0)

	// повторное добавление того же товара увеличивает количество
	resp = doRequest(t, http.MethodPost, "/api/cart/items", sessionID, map[string]string{"productId": "1"})
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Len(t, view.Items, 1, "same product should merge into one line")
	assert.Equal(t, 2, view.Items[0].Quantity)

	// нулевое количество удаляет позицию
	resp = doRequest(t, http.MethodPut, "/api/cart/items/1", sessionID, map[string]int{"quantity": 0})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Empty(t, view.Items)
}

// сценарий изоляции корзин разных сессий
func TestCartSessionIsolation(t *testing.T) {
	first := uuid.NewString()
	second := uuid.NewString()

	resp := doRequest(t, http.MethodPost, "/api/cart/items", first, map[string]string{"productId": "2"})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, "/api/cart", second, nil)
	defer resp.Body.Close()
	var view CartView
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Empty(t, view.Items, "another session must not see the cart")
}

// сценарий оформления заказа: корзина наполняется, форма проходит,
// оркестратор доводит оплату до терминального успеха
func TestCheckoutFlow(t *testing.T) {
	sessionID := uuid.NewString()

	resp := doRequest(t, http.MethodPost, "/api/cart/items", sessionID, map[string]string{"productId": "1"})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, "/api/checkout", sessionID, checkoutForm())
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "expected 201 for successful checkout")

	var result CheckoutResult
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "success", result.Status)
	assert.NotEmpty(t, result.OrderID)
	assert.Contains(t, []string{"Stripe", "PayTR"}, result.Gateway)

	// корзина очищена после успешного заказа
	resp = doRequest(t, http.MethodGet, "/api/cart", sessionID, nil)
	defer resp.Body.Close()
	var view CartView
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Empty(t, view.Items, "cart should be cleared after a successful order")

	// статус попытки — success с номером заказа
	resp = doRequest(t, http.MethodGet, "/api/checkout/status", sessionID, nil)
	defer resp.Body.Close()
	var status struct {
		Status  string `json:"status"`
		OrderID string `json:"orderId"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "success", status.Status)
	assert.Equal(t, result.OrderID, status.OrderID)
}

// сценарий оформления с пустой корзиной
func TestCheckoutEmptyCart(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/checkout", uuid.NewString(), checkoutForm())
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "expected 400 for empty cart")
}

// сценарий оформления с невалидной формой
func TestCheckoutValidation(t *testing.T) {
	sessionID := uuid.NewString()

	resp := doRequest(t, http.MethodPost, "/api/cart/items", sessionID, map[string]string{"productId": "1"})
	resp.Body.Close()

	form := checkoutForm()
	form["email"] = "not-an-email"
	form["expiry"] = "1227"

	resp = doRequest(t, http.MethodPost, "/api/checkout", sessionID, form)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "expected 422 for invalid form")

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "expiry")
}

// сценарий доступа к админским ручкам без прав администратора
func TestAdminForbiddenForUser(t *testing.T) {
	login := loginUser(t, "user@nexus.com")

	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/admin/stats", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Token)

	client := &http.Client{}
	resp, err := client.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "expected 403 for non-admin user")
}

// сценарий получения сводки администратором
func TestAdminStats(t *testing.T) {
	login := loginUser(t, "admin@nexus.com")

	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/admin/stats", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Token)

	client := &http.Client{}
	resp, err := client.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		TotalOrders int `json:"totalOrders"`
		TotalUsers  int `json:"totalUsers"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.GreaterOrEqual(t, stats.TotalUsers, 2)
}

// сценарий проверки здоровья сервиса
func TestHealth(t *testing.T) {
	resp, err := http.Get(baseURL + "/health")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// сценарий получения настроек витрины (курсы валют)
func TestSettings(t *testing.T) {
	resp, err := http.Get(baseURL + "/api/settings")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var settings struct {
		BaseCurrency  string             `json:"baseCurrency"`
		ExchangeRates map[string]float64 `json:"exchangeRates"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&settings))
	assert.Equal(t, "USD", settings.BaseCurrency)
	assert.Contains(t, settings.ExchangeRates, "EUR")
}
