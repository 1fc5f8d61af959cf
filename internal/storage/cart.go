package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/linemk/nexus-shop/internal/domain/models"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartStorage описывает корзину, привязанную к сессии.
// Позиции хранятся в порядке добавления; ключ позиции — (productID, variantID)
type CartStorage interface {
	Items(ctx context.Context, sessionID string) ([]models.CartItem, error)
	AddItem(ctx context.Context, sessionID string, product *models.Product, variantID string) error
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int, variantID string) error
	RemoveItem(ctx context.Context, sessionID, productID, variantID string) error
	Total(ctx context.Context, sessionID string) (float64, error)
	ClearCart(ctx context.Context, sessionID string) error
}

// cartRepository держит корзины всех сессий в памяти,
// корзина каждой сессии сохраняется в KV под собственным ключом
type cartRepository struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem
	kv    KV
}

func NewCartRepository(kv KV) *cartRepository {
	return &cartRepository{
		carts: make(map[string][]models.CartItem),
		kv:    kv,
	}
}

// itemsLocked возвращает корзину сессии, при первом обращении
// поднимая снимок из адаптера персистентности; вызывать под мьютексом
func (r *cartRepository) itemsLocked(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	if items, ok := r.carts[sessionID]; ok {
		return items, nil
	}

	raw, err := r.kv.Load(ctx, kvCartPrefix+sessionID)
	switch {
	case err == nil:
		var items []models.CartItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
		}
		r.carts[sessionID] = items
		return items, nil
	case errors.Is(err, ErrKeyNotFound):
		r.carts[sessionID] = nil
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}
}

func (r *cartRepository) persistLocked(ctx context.Context, sessionID string) error {
	raw, err := json.Marshal(r.carts[sessionID])
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	if err := r.kv.Save(ctx, kvCartPrefix+sessionID, raw); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func (r *cartRepository) Items(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.itemsLocked(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out, nil
}

// AddItem добавляет единицу товара: если позиция с той же парой
// (товар, вариант) уже есть — увеличивает её количество
func (r *cartRepository) AddItem(ctx context.Context, sessionID string, product *models.Product, variantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.itemsLocked(ctx, sessionID)
	if err != nil {
		return err
	}

	merged := false
	for i := range items {
		if items[i].Product.ID == product.ID && items[i].SelectedVariantID == variantID {
			items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{
			Product:           *product,
			Quantity:          1,
			SelectedVariantID: variantID,
		})
	}
	r.carts[sessionID] = items
	return r.persistLocked(ctx, sessionID)
}

// UpdateQuantity меняет количество позиции; при quantity <= 0 позиция удаляется
func (r *cartRepository) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int, variantID string) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, sessionID, productID, variantID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.itemsLocked(ctx, sessionID)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].Product.ID == productID && items[i].SelectedVariantID == variantID {
			items[i].Quantity = quantity
			r.carts[sessionID] = items
			return r.persistLocked(ctx, sessionID)
		}
	}
	return ErrCartItemNotFound
}

func (r *cartRepository) RemoveItem(ctx context.Context, sessionID, productID, variantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.itemsLocked(ctx, sessionID)
	if err != nil {
		return err
	}
	out := items[:0]
	for _, item := range items {
		if item.Product.ID == productID && item.SelectedVariantID == variantID {
			continue
		}
		out = append(out, item)
	}
	r.carts[sessionID] = out
	return r.persistLocked(ctx, sessionID)
}

// Total считает сумму корзины по эффективным ценам позиций
func (r *cartRepository) Total(ctx context.Context, sessionID string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.itemsLocked(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	var total float64
	for i := range items {
		total += items[i].Subtotal()
	}
	return total, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[sessionID] = nil
	if err := r.kv.Delete(ctx, kvCartPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
