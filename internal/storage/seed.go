package storage

import (
	"time"

	"github.com/linemk/nexus-shop/internal/domain/models"
)

// SeedProducts возвращает стартовый каталог.
// Используется, когда в адаптере персистентности ещё нет снимка
func SeedProducts() []*models.Product {
	return []*models.Product{
		{
			ID:          "1",
			Name:        "Pro Noise-Cancelling Headphones",
			Description: "Experience premium sound quality with active noise cancellation and 30-hour battery life.",
			Price:       299.99,
			Category:    "Electronics",
			Images:      []string{"https://picsum.photos/400/400?random=1"},
			Stock:       50,
			Rating:      4.8,
			Reviews:     120,
			Featured:    true,
			Variants: []models.ProductVariant{
				{ID: "v1_1", Name: "Black", SKU: "HP-BLK", PriceModifier: 0, Stock: 20},
				{ID: "v1_2", Name: "Silver", SKU: "HP-SLV", PriceModifier: 10, Stock: 15},
				{ID: "v1_3", Name: "Limited Gold", SKU: "HP-GLD", PriceModifier: 50, Stock: 5},
			},
		},
		{
			ID:          "2",
			Name:        "Ergonomic Office Chair",
			Description: "Designed for comfort and productivity with adjustable lumbar support.",
			Price:       199.99,
			Category:    "Furniture",
			Images:      []string{"https://picsum.photos/400/400?random=2"},
			Stock:       20,
			Rating:      4.5,
			Reviews:     85,
		},
		{
			ID:          "3",
			Name:        "Smart Fitness Watch",
			Description: "Track your health metrics, workouts, and sleep patterns with precision.",
			Price:       149.50,
			Category:    "Electronics",
			Images:      []string{"https://picsum.photos/400/400?random=3"},
			Stock:       100,
			Rating:      4.6,
			Reviews:     230,
			Featured:    true,
		},
		{
			ID:          "4",
			Name:        "Minimalist Backpack",
			Description: "Water-resistant, durable, and stylish backpack for daily commute.",
			Price:       79.99,
			Category:    "Accessories",
			Images:      []string{"https://picsum.photos/400/400?random=4"},
			Stock:       45,
			Rating:      4.7,
			Reviews:     60,
		},
		{
			ID:          "5",
			Name:        "Mechanical Keyboard",
			Description: "Tactile switches and RGB lighting for the ultimate typing experience.",
			Price:       129.00,
			Category:    "Electronics",
			Images:      []string{"https://picsum.photos/400/400?random=5"},
			Stock:       30,
			Rating:      4.9,
			Reviews:     310,
			Featured:    true,
			Variants: []models.ProductVariant{
				{ID: "v5_1", Name: "Blue Switches", SKU: "KB-BLU", PriceModifier: 0, Stock: 10},
				{ID: "v5_2", Name: "Red Switches", SKU: "KB-RED", PriceModifier: 5, Stock: 10},
			},
		},
		{
			ID:          "6",
			Name:        "Organic Cotton T-Shirt",
			Description: "Soft, breathable, and sustainably sourced cotton t-shirt.",
			Price:       25.00,
			Category:    "Clothing",
			Images:      []string{"https://picsum.photos/400/400?random=6"},
			Stock:       200,
			Rating:      4.2,
			Reviews:     45,
			Variants: []models.ProductVariant{
				{ID: "v6_1", Name: "White / S", SKU: "TS-W-S", PriceModifier: 0, Stock: 20},
				{ID: "v6_2", Name: "White / M", SKU: "TS-W-M", PriceModifier: 0, Stock: 30},
				{ID: "v6_3", Name: "White / L", SKU: "TS-W-L", PriceModifier: 0, Stock: 30},
				{ID: "v6_4", Name: "Black / M", SKU: "TS-B-M", PriceModifier: 2, Stock: 25},
			},
		},
	}
}

// SeedUsers возвращает демо-пользователей (логин без пароля, см. AuthService)
func SeedUsers() []*models.User {
	return []*models.User{
		{
			ID:     "u1",
			Name:   "Demo Admin",
			Email:  "admin@nexus.com",
			Role:   models.RoleAdmin,
			Avatar: "https://picsum.photos/100/100?random=10",
		},
		{
			ID:     "u2",
			Name:   "John Doe",
			Email:  "user@nexus.com",
			Role:   models.RoleUser,
			Avatar: "https://picsum.photos/100/100?random=11",
		},
	}
}

// SeedOrders возвращает исторический доставленный заказ
func SeedOrders(now time.Time) []*models.Order {
	products := SeedProducts()
	return []*models.Order{
		{
			ID:     "ord_123",
			UserID: "u2",
			Items: []models.CartItem{
				{Product: *products[0], Quantity: 1},
			},
			Total:          299.99,
			Currency:       "USD",
			Status:         models.OrderStatusDelivered,
			CreatedAt:      now.Add(-3 * 24 * time.Hour),
			PaymentGateway: models.GatewayStripe,
			ShippingAddress: models.Address{
				FullName: "John Doe",
				Street:   "123 Main St",
				City:     "New York",
				State:    "NY",
				Zip:      "10001",
				Country:  "USA",
			},
			Timeline: []models.TimelineEntry{
				{Status: "created", Timestamp: now.Add(-3 * 24 * time.Hour), Description: "Order received"},
				{Status: "paid", Timestamp: now.Add(-70 * time.Hour), Description: "Payment confirmed via Stripe"},
				{Status: "shipped", Timestamp: now.Add(-2 * 24 * time.Hour), Description: "Package handed to carrier"},
				{Status: "delivered", Timestamp: now.Add(-24 * time.Hour), Description: "Delivered to front porch"},
			},
		},
	}
}
