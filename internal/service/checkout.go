package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/linemk/nexus-shop/internal/domain/models"
	"github.com/linemk/nexus-shop/internal/notify"
	"github.com/linemk/nexus-shop/internal/storage"
)

// PaymentStatus — состояние попытки оплаты в рамках одной отправки формы
type PaymentStatus string

const (
	PaymentIdle               PaymentStatus = "idle"
	PaymentProcessingPrimary  PaymentStatus = "processing_primary"
	PaymentFailedPrimary      PaymentStatus = "failed_primary"
	PaymentProcessingFallback PaymentStatus = "processing_fallback"
	PaymentSuccess            PaymentStatus = "success"
)

var (
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderCreation      = errors.New("order creation failed")
)

// CheckoutConfig — параметры симуляции платёжного конвейера.
// Значения приходят из конфигурации, а не зашиты в код,
// чтобы тесты могли выставить нулевые задержки и управляемую случайность
type CheckoutConfig struct {
	PrimaryGateway     models.PaymentGateway
	FallbackGateway    models.PaymentGateway
	PrimaryFailureRate float64
	PrimaryDelay       time.Duration
	FallbackDelay      time.Duration
	TaxRate            float64
}

// CheckoutResult — итог успешной отправки
type CheckoutResult struct {
	OrderID string                `json:"orderId"`
	Gateway models.PaymentGateway `json:"gateway"`
	Status  PaymentStatus         `json:"status"`
}

// CheckoutService — оркестратор оплаты: один проход конечного автомата
// idle → processing_primary → {success | failed_primary → processing_fallback → success}
// на каждую отправку формы
type CheckoutService interface {
	Submit(ctx context.Context, sessionID, userID string, draft OrderDraft) (*CheckoutResult, error)
	Status(sessionID string) (PaymentStatus, string)
}

// OrderCreator — граница сервиса создания заказов;
// любая ошибка создания непрозрачна для оркестратора
type OrderCreator interface {
	Create(ctx context.Context, in CreateOrderInput) (*models.Order, error)
}

type checkoutService struct {
	log    *slog.Logger
	cfg    CheckoutConfig
	carts  storage.CartStorage
	orders OrderCreator
	sink   notify.Sink
	clock  Clock
	rand   func() float64 // Bernoulli-розыгрыш отказа первичного шлюза

	mu       sync.Mutex
	attempts map[string]*attempt // по sessionID; только одна попытка в полёте
}

type attempt struct {
	status  PaymentStatus
	orderID string
}

func NewCheckoutService(log *slog.Logger, cfg CheckoutConfig, carts storage.CartStorage, orders OrderCreator, sink notify.Sink, clock Clock, rnd func() float64) *checkoutService {
	return &checkoutService{
		log:      log,
		cfg:      cfg,
		carts:    carts,
		orders:   orders,
		sink:     sink,
		clock:    clock,
		rand:     rnd,
		attempts: make(map[string]*attempt),
	}
}

// Status возвращает текущее состояние попытки сессии и id заказа,
// если попытка завершилась успехом
func (s *checkoutService) Status(sessionID string) (PaymentStatus, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[sessionID]
	if !ok {
		return PaymentIdle, ""
	}
	return a.status, a.orderID
}

// begin регистрирует новую попытку; возвращает ошибку, если попытка
// этой сессии ещё не достигла терминального состояния
func (s *checkoutService) begin(sessionID string) (*attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.attempts[sessionID]; ok {
		if a.status != PaymentIdle && a.status != PaymentSuccess {
			return nil, ErrCheckoutInProgress
		}
	}
	a := &attempt{status: PaymentProcessingPrimary}
	s.attempts[sessionID] = a
	return a, nil
}

func (s *checkoutService) setStatus(a *attempt, status PaymentStatus) {
	s.mu.Lock()
	a.status = status
	s.mu.Unlock()
}

// wait приостанавливает конвейер на заданное время, не блокируя других
func (s *checkoutService) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clock.After(d):
		return nil
	}
}

// Submit проводит одну отправку формы через конечный автомат оплаты.
// Валидация формы локальна и выполняется до любых переходов;
// корзина очищается ровно один раз и только после успешного создания заказа
func (s *checkoutService) Submit(ctx context.Context, sessionID, userID string, draft OrderDraft) (*CheckoutResult, error) {
	const op = "service.CheckoutService.Submit"
	logger := s.log.With(slog.String("op", op), slog.String("sessionID", sessionID))

	if err := ValidateDraft(draft); err != nil {
		logger.Warn("draft validation failed")
		return nil, err
	}

	a, err := s.begin(sessionID)
	if err != nil {
		logger.Warn("submission rejected: attempt in flight")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// начатая попытка доходит до терминального исхода даже при обрыве
	// клиентского соединения
	ctx = context.WithoutCancel(ctx)

	items, err := s.carts.Items(ctx, sessionID)
	if err != nil {
		s.reset(sessionID)
		return nil, fmt.Errorf("%s: failed to read cart: %w", op, err)
	}
	if len(items) == 0 {
		s.reset(sessionID)
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	logger.Info("payment attempt started", slog.String("gateway", string(s.cfg.PrimaryGateway)))
	s.sink.Notify(sessionID, fmt.Sprintf("Processing via %s...", s.cfg.PrimaryGateway), notify.LevelInfo)

	// имитация сетевой задержки первичного шлюза
	if err := s.wait(ctx, s.cfg.PrimaryDelay); err != nil {
		s.reset(sessionID)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	gateway := s.cfg.PrimaryGateway
	if s.rand() < s.cfg.PrimaryFailureRate {
		// симулированный отказ первичного шлюза: ожидаемая ветка автомата,
		// а не ошибка — один фиксированный failover на резервный шлюз
		logger.Warn("primary gateway failed, switching to fallback",
			slog.String("fallback", string(s.cfg.FallbackGateway)))
		s.setStatus(a, PaymentFailedPrimary)
		s.sink.Notify(sessionID, "Gateway Timeout. Retrying...", notify.LevelError)

		if err := s.wait(ctx, s.cfg.FallbackDelay); err != nil {
			s.reset(sessionID)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.setStatus(a, PaymentProcessingFallback)
		s.sink.Notify(sessionID, fmt.Sprintf("Failover to %s...", s.cfg.FallbackGateway), notify.LevelInfo)
		gateway = s.cfg.FallbackGateway
	}

	result, err := s.createOrder(ctx, sessionID, userID, draft, items, gateway)
	if err != nil {
		// ошибка создания заказа терминальна для попытки: автомат
		// возвращается в idle, заказа и списания не существует
		logger.Error("order creation failed", slog.Any("error", err))
		s.reset(sessionID)
		s.sink.Notify(sessionID, "Payment failed. Please try again.", notify.LevelError)
		return nil, fmt.Errorf("%s: %w: %v", op, ErrOrderCreation, err)
	}

	s.mu.Lock()
	a.status = PaymentSuccess
	a.orderID = result.OrderID
	s.mu.Unlock()

	// очистка корзины — строго после успешного создания заказа
	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		logger.Error("failed to clear cart after success", slog.Any("error", err))
	}
	s.sink.Notify(sessionID, "Order confirmed: "+result.OrderID, notify.LevelSuccess)
	logger.Info("checkout succeeded", slog.String("orderID", result.OrderID), slog.String("gateway", string(gateway)))

	return result, nil
}

func (s *checkoutService) createOrder(ctx context.Context, sessionID, userID string, draft OrderDraft, items []models.CartItem, gateway models.PaymentGateway) (*CheckoutResult, error) {
	subtotal, err := s.carts.Total(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		userID = models.GuestUserID
	}
	currency := draft.Currency
	if currency == "" {
		currency = "USD"
	}

	order, err := s.orders.Create(ctx, CreateOrderInput{
		UserID:   userID,
		Items:    items,
		Total:    subtotal * (1 + s.cfg.TaxRate),
		Currency: currency,
		ShippingAddress: models.Address{
			FullName: draft.FullName,
			Street:   draft.Address,
			City:     draft.City,
			State:    "NY", // форма не собирает регион и страну
			Zip:      draft.Zip,
			Country:  "USA",
		},
		PaymentGateway: gateway,
	})
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{
		OrderID: order.ID,
		Gateway: order.PaymentGateway,
		Status:  PaymentSuccess,
	}, nil
}

// reset возвращает автомат сессии в idle (попытка снята)
func (s *checkoutService) reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, sessionID)
}
