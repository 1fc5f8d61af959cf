package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linemk/nexus-shop/internal/domain/models"
	"github.com/linemk/nexus-shop/internal/storage"
)

var (
	ErrEmptyOrder     = errors.New("order has no items")
	ErrInvalidTotal   = errors.New("order total must be positive")
	ErrUnknownGateway = errors.New("unknown payment gateway")
)

// CreateOrderInput — данные для создания заказа (тело POST /api/orders)
type CreateOrderInput struct {
	UserID          string                `json:"userId"`
	Items           []models.CartItem     `json:"items"`
	Total           float64               `json:"total"`
	Currency        string                `json:"currency"`
	ShippingAddress models.Address        `json:"shippingAddress"`
	PaymentGateway  models.PaymentGateway `json:"paymentGateway"`
}

// OrderService создаёт заказы и отдаёт историю.
// Заказ либо создаётся целиком, либо не создаётся вовсе
type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*models.Order, error)
	ListOrders(ctx context.Context, userID string, isAdmin bool) ([]*models.Order, error)
}

type orderService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
	clock     Clock
}

func NewOrderService(log *slog.Logger, orderRepo storage.OrderStorage, clock Clock) OrderService {
	return &orderService{
		log:       log,
		orderRepo: orderRepo,
		clock:     clock,
	}
}

// Create валидирует вход, присваивает серверный id и создаёт заказ
// в статусе processing с начальным timeline
func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	const op = "service.OrderService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("userID", in.UserID))

	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyOrder)
	}
	if in.Total <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidTotal)
	}
	if !models.KnownGateway(in.PaymentGateway) {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrUnknownGateway, in.PaymentGateway)
	}

	userID := in.UserID
	if userID == "" {
		userID = models.GuestUserID
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	now := s.clock.Now()
	order := &models.Order{
		ID:              "ord_" + uuid.NewString(),
		UserID:          userID,
		Items:           in.Items,
		Total:           in.Total,
		Currency:        currency,
		Status:          models.OrderStatusProcessing,
		CreatedAt:       now,
		ShippingAddress: in.ShippingAddress,
		PaymentGateway:  in.PaymentGateway,
		Timeline: []models.TimelineEntry{
			{Status: "created", Timestamp: now, Description: "Order created via " + string(in.PaymentGateway)},
			{Status: "fraud_check", Timestamp: now, Description: "Fraud risk score calculated: Low"},
			{Status: "paid", Timestamp: now, Description: "Payment authorized"},
		},
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	logger.Info("order created", slog.String("orderID", order.ID), slog.String("gateway", string(order.PaymentGateway)))
	return order, nil
}

// ListOrders возвращает заказы пользователя; администратор видит все
func (s *orderService) ListOrders(ctx context.Context, userID string, isAdmin bool) ([]*models.Order, error) {
	const op = "service.OrderService.ListOrders"

	if isAdmin {
		orders, err := s.orderRepo.ListOrders(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return orders, nil
	}

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}
