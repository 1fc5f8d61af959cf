package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/nexus-shop/internal/domain/models"
	"github.com/linemk/nexus-shop/internal/storage"
)

var ErrVariantNotFound = errors.New("product variant not found")

// CartView — содержимое корзины для ответа API
type CartView struct {
	Items    []models.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
}

// CartService управляет корзиной сессии
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID, productID, variantID string) (*CartView, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int, variantID string) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID, productID, variantID string) (*CartView, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type cartService struct {
	log         *slog.Logger
	cartRepo    storage.CartStorage
	productRepo storage.ProductStorage
}

func NewCartService(log *slog.Logger, cartRepo storage.CartStorage, productRepo storage.ProductStorage) CartService {
	return &cartService{
		log:         log,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) view(ctx context.Context, sessionID string) (*CartView, error) {
	items, err := s.cartRepo.Items(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	total, err := s.cartRepo.Total(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return &CartView{Items: items, Subtotal: total}, nil
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	const op = "service.CartService.GetCart"

	view, err := s.view(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

// AddItem кладёт в корзину единицу товара; перед добавлением
// проверяется, что товар и выбранный вариант существуют в каталоге
func (s *cartService) AddItem(ctx context.Context, sessionID, productID, variantID string) (*CartView, error) {
	const op = "service.CartService.AddItem"
	logger := s.log.With(slog.String("op", op), slog.String("productID", productID))

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		logger.Warn("product lookup failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if variantID != "" {
		if _, ok := product.VariantByID(variantID); !ok {
			logger.Warn("unknown variant", slog.String("variantID", variantID))
			return nil, fmt.Errorf("%s: %w", op, ErrVariantNotFound)
		}
	}

	if err := s.cartRepo.AddItem(ctx, sessionID, product, variantID); err != nil {
		logger.Error("failed to add item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	view, err := s.view(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int, variantID string) (*CartView, error) {
	const op = "service.CartService.UpdateQuantity"

	if err := s.cartRepo.UpdateQuantity(ctx, sessionID, productID, quantity, variantID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	view, err := s.view(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID, variantID string) (*CartView, error) {
	const op = "service.CartService.RemoveItem"

	if err := s.cartRepo.RemoveItem(ctx, sessionID, productID, variantID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	view, err := s.view(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	const op = "service.CartService.ClearCart"

	if err := s.cartRepo.ClearCart(ctx, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
