package models

import "time"

// OrderStatus — статус заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusFraudCheck OrderStatus = "fraud_check"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentGateway — платёжный шлюз (интеграция симулируется, см. сервис checkout)
type PaymentGateway string

const (
	GatewayStripe PaymentGateway = "Stripe"
	GatewayPayPal PaymentGateway = "PayPal"
	GatewayIyzico PaymentGateway = "Iyzico"
	GatewayPayTR  PaymentGateway = "PayTR"
	GatewayCOD    PaymentGateway = "COD"
)

// KnownGateway проверяет, входит ли шлюз в поддерживаемый набор
func KnownGateway(g PaymentGateway) bool {
	switch g {
	case GatewayStripe, GatewayPayPal, GatewayIyzico, GatewayPayTR, GatewayCOD:
		return true
	}
	return false
}

// Address — адрес доставки заказа
type Address struct {
	FullName string `json:"fullName"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// TimelineEntry — запись аудита статусов заказа.
// Timeline пополняется только добавлением, метки времени не убывают.
type TimelineEntry struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// Order представляет заказ. Создаётся один раз сервисом заказов,
// после создания меняется только добавлением записей в Timeline
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []CartItem      `json:"items"`
	Total           float64         `json:"total"`
	Currency        string          `json:"currency"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	ShippingAddress Address         `json:"shippingAddress"`
	Timeline        []TimelineEntry `json:"timeline"`
	PaymentGateway  PaymentGateway  `json:"paymentGateway"`
}

// GuestUserID — идентификатор пользователя для заказов без аутентификации
const GuestUserID = "guest"
