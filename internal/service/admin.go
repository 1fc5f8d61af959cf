package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/linemk/nexus-shop/internal/domain/models"
	"github.com/linemk/nexus-shop/internal/storage"
)

// CreateProductInput — тело POST /api/admin/products
type CreateProductInput struct {
	Name        string                  `json:"name" validate:"required"`
	Description string                  `json:"description"`
	Price       float64                 `json:"price"`
	Category    string                  `json:"category"`
	Images      []string                `json:"images"`
	Stock       int                     `json:"stock"`
	Featured    bool                    `json:"featured"`
	Variants    []models.ProductVariant `json:"variants"`
}

// UpdateProductInput — частичное обновление товара; nil-поля не трогаются
type UpdateProductInput struct {
	Name        *string                  `json:"name"`
	Description *string                  `json:"description"`
	Price       *float64                 `json:"price"`
	Category    *string                  `json:"category"`
	Images      *[]string                `json:"images"`
	Stock       *int                     `json:"stock"`
	Featured    *bool                    `json:"featured"`
	Variants    *[]models.ProductVariant `json:"variants"`
}

// Stats — сводка для админской панели
type Stats struct {
	TotalSales   float64         `json:"totalSales"`
	TotalOrders  int             `json:"totalOrders"`
	TotalUsers   int             `json:"totalUsers"`
	RecentOrders []*models.Order `json:"recentOrders"`
}

// AdminService — управление каталогом и сводная статистика.
// Мутирует ту же коллекцию товаров, которую читает витрина
type AdminService interface {
	CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*Stats, error)
}

type adminService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
	orderRepo   storage.OrderStorage
	userRepo    storage.UserStorage
}

func NewAdminService(log *slog.Logger, productRepo storage.ProductStorage, orderRepo storage.OrderStorage, userRepo storage.UserStorage) AdminService {
	return &adminService{
		log:         log,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
	}
}

func (s *adminService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	const op = "service.AdminService.CreateProduct"
	logger := s.log.With(slog.String("op", op), slog.String("name", in.Name))

	product := &models.Product{
		ID:          "p_" + uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Images:      in.Images,
		Stock:       in.Stock,
		Featured:    in.Featured,
		Variants:    in.Variants,
	}
	if product.Category == "" {
		product.Category = "Other"
	}
	if len(product.Images) == 0 {
		product.Images = []string{fmt.Sprintf("https://picsum.photos/400/400?random=%d", rand.Intn(100))}
	}

	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("failed to create product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("product created", slog.String("productID", created.ID))
	return created, nil
}

// UpdateProduct применяет частичное обновление; id товара неизменяем
func (s *adminService) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error) {
	const op = "service.AdminService.UpdateProduct"

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Images != nil {
		product.Images = *in.Images
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Featured != nil {
		product.Featured = *in.Featured
	}
	if in.Variants != nil {
		product.Variants = *in.Variants
	}

	updated, err := s.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func (s *adminService) DeleteProduct(ctx context.Context, id string) error {
	const op = "service.AdminService.DeleteProduct"

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("product deleted", slog.String("op", op), slog.String("productID", id))
	return nil
}

func (s *adminService) GetStats(ctx context.Context) (*Stats, error) {
	const op = "service.AdminService.GetStats"

	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	users, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats := &Stats{
		TotalOrders: len(orders),
		TotalUsers:  users,
	}
	for _, o := range orders {
		stats.TotalSales += o.Total
	}
	recent := orders
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.RecentOrders = recent
	return stats, nil
}
