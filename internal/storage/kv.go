package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KV — адаптер персистентности для стейт-контейнеров.
// Репозитории работают в памяти, а через KV загружают снимок при старте
// и сохраняют его при каждой мутации.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ключи снимков
const (
	kvKeyProducts = "products"
	kvKeyOrders   = "orders"
	kvCartPrefix  = "cart:"
)
