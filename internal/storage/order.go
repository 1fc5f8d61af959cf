package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/linemk/nexus-shop/internal/domain/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStorage описывает методы для работы с заказами.
// Заказы хранятся от новых к старым (как отдаёт их API)
type OrderStorage interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	ListOrders(ctx context.Context) ([]*models.Order, error)
	GetOrdersByUserID(ctx context.Context, userID string) ([]*models.Order, error)
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
}

// orderRepository — in-memory реализация OrderStorage со снимком в KV
type orderRepository struct {
	mu     sync.RWMutex
	orders []*models.Order
	kv     KV
}

func NewOrderRepository(ctx context.Context, kv KV, seed []*models.Order) (*orderRepository, error) {
	repo := &orderRepository{kv: kv}

	raw, err := kv.Load(ctx, kvKeyOrders)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &repo.orders); err != nil {
			return nil, fmt.Errorf("failed to decode orders snapshot: %w", err)
		}
	case errors.Is(err, ErrKeyNotFound):
		repo.orders = seed
		if err := repo.persist(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to load orders snapshot: %w", err)
	}
	return repo, nil
}

func (r *orderRepository) persist(ctx context.Context) error {
	raw, err := json.Marshal(r.orders)
	if err != nil {
		return fmt.Errorf("failed to encode orders snapshot: %w", err)
	}
	if err := r.kv.Save(ctx, kvKeyOrders, raw); err != nil {
		return fmt.Errorf("failed to persist orders: %w", err)
	}
	return nil
}

// CreateOrder добавляет заказ в начало списка (новые — первыми)
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.orders = append([]*models.Order{&cp}, r.orders...)
	if err := r.persist(ctx); err != nil {
		r.orders = r.orders[1:]
		return err
	}
	return nil
}

func (r *orderRepository) ListOrders(_ context.Context) ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Order, len(r.orders))
	for i, o := range r.orders {
		cp := *o
		out[i] = &cp
	}
	return out, nil
}

func (r *orderRepository) GetOrdersByUserID(_ context.Context, userID string) ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *orderRepository) GetOrderByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, ErrOrderNotFound
}
