package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/linemk/nexus-shop/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStorage описывает методы для работы с каталогом товаров.
// Каталог читают витрина и корзина, мутируют — админские ручки.
type ProductStorage interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// productRepository — in-memory реализация ProductStorage.
// Снимок каталога сохраняется в KV при каждой мутации
type productRepository struct {
	mu       sync.RWMutex
	products []*models.Product
	kv       KV
}

// NewProductRepository загружает каталог из адаптера персистентности,
// при отсутствии снимка — инициализирует его стартовыми данными
func NewProductRepository(ctx context.Context, kv KV, seed []*models.Product) (*productRepository, error) {
	repo := &productRepository{kv: kv}

	raw, err := kv.Load(ctx, kvKeyProducts)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &repo.products); err != nil {
			return nil, fmt.Errorf("failed to decode products snapshot: %w", err)
		}
	case errors.Is(err, ErrKeyNotFound):
		repo.products = seed
		if err := repo.persist(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to load products snapshot: %w", err)
	}
	return repo, nil
}

// persist сохраняет снимок каталога; вызывать под мьютексом
func (r *productRepository) persist(ctx context.Context) error {
	raw, err := json.Marshal(r.products)
	if err != nil {
		return fmt.Errorf("failed to encode products snapshot: %w", err)
	}
	if err := r.kv.Save(ctx, kvKeyProducts, raw); err != nil {
		return fmt.Errorf("failed to persist products: %w", err)
	}
	return nil
}

func (r *productRepository) ListProducts(_ context.Context) ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Product, len(r.products))
	for i, p := range r.products {
		cp := *p
		out[i] = &cp
	}
	return out, nil
}

func (r *productRepository) GetProductByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *product
	r.products = append(r.products, &cp)
	if err := r.persist(ctx); err != nil {
		r.products = r.products[:len(r.products)-1]
		return nil, err
	}
	out := cp
	return &out, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == product.ID {
			prev := r.products[i]
			cp := *product
			r.products[i] = &cp
			if err := r.persist(ctx); err != nil {
				r.products[i] = prev
				return nil, err
			}
			out := cp
			return &out, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			prev := r.products
			r.products = append(append([]*models.Product{}, r.products[:i]...), r.products[i+1:]...)
			if err := r.persist(ctx); err != nil {
				r.products = prev
				return err
			}
			return nil
		}
	}
	return ErrProductNotFound
}
