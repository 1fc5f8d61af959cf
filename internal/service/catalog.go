package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/nexus-shop/internal/domain/models"
	"github.com/linemk/nexus-shop/internal/storage"
)

// CatalogService — read-only витрина каталога
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetRelatedProducts(ctx context.Context, id string) ([]*models.Product, error)
}

type catalogService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
}

func NewCatalogService(log *slog.Logger, productRepo storage.ProductStorage) CatalogService {
	return &catalogService{
		log:         log,
		productRepo: productRepo,
	}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "service.CatalogService.ListProducts"

	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	const op = "service.CatalogService.GetProduct"

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

// GetRelatedProducts возвращает товары той же категории (кроме самого товара),
// а если таких нет — первые три других товара каталога
func (s *catalogService) GetRelatedProducts(ctx context.Context, id string) ([]*models.Product, error) {
	const op = "service.CatalogService.GetRelatedProducts"

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	all, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var related []*models.Product
	for _, p := range all {
		if p.ID != id && p.Category == product.Category {
			related = append(related, p)
		}
	}
	if len(related) > 0 {
		return related, nil
	}

	var fallback []*models.Product
	for _, p := range all {
		if p.ID == id {
			continue
		}
		fallback = append(fallback, p)
		if len(fallback) == 3 {
			break
		}
	}
	return fallback, nil
}
