package main

import (
	"context"

	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/nexus-shop/internal/app"
	"github.com/linemk/nexus-shop/internal/app/handlers"
	"github.com/linemk/nexus-shop/internal/config"
	"github.com/linemk/nexus-shop/internal/domain/models"
	"github.com/linemk/nexus-shop/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/nexus-shop/internal/lib/currency"
	"github.com/linemk/nexus-shop/internal/lib/logger"
	"github.com/linemk/nexus-shop/internal/lib/logger/handlers/urllog"
	"github.com/linemk/nexus-shop/internal/notify"
	"github.com/linemk/nexus-shop/internal/service"
	"github.com/linemk/nexus-shop/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения: конфиг и адаптер персистентности
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.Close()

	ctx := context.Background()

	// стейт-контейнеры: загрузка снимков, при их отсутствии — demo seed
	productRepo, err := storage.NewProductRepository(ctx, application.KV, storage.SeedProducts())
	if err != nil {
		log.Error("failed to init product repository", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to init product repository"))
	}
	orderRepo, err := storage.NewOrderRepository(ctx, application.KV, storage.SeedOrders(time.Now()))
	if err != nil {
		log.Error("failed to init order repository", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to init order repository"))
	}
	userRepo := storage.NewUserRepository(storage.SeedUsers())
	cartRepo := storage.NewCartRepository(application.KV)

	clock := service.NewRealClock()
	sink := notify.NewMemory()
	converter := currency.NewConverter(cfg.Currency.Rates())

	authService := service.NewAuthService(log, userRepo, time.Duration(cfg.JWT.TokenTTL)*time.Minute)
	catalogService := service.NewCatalogService(log, productRepo)
	cartService := service.NewCartService(log, cartRepo, productRepo)
	orderService := service.NewOrderService(log, orderRepo, clock)
	adminService := service.NewAdminService(log, productRepo, orderRepo, userRepo)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	checkoutService := service.NewCheckoutService(log, service.CheckoutConfig{
		PrimaryGateway:     models.PaymentGateway(cfg.Payment.PrimaryGateway),
		FallbackGateway:    models.PaymentGateway(cfg.Payment.FallbackGateway),
		PrimaryFailureRate: cfg.Payment.PrimaryFailureRate,
		PrimaryDelay:       cfg.Payment.PrimaryDelay,
		FallbackDelay:      cfg.Payment.FallbackDelay,
		TaxRate:            cfg.Payment.TaxRate,
	}, cartRepo, orderService, sink, clock, rng.Float64)

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/", handlers.RootHandler(log))
	router.Get("/health", handlers.HealthHandler())

	// публичные эндпоинты
	router.Post("/api/auth/login", handlers.LoginHandler(log, authService))
	router.Get("/api/products", handlers.ListProductsHandler(log, catalogService))
	router.Get("/api/products/{id}", handlers.GetProductHandler(log, catalogService))
	router.Get("/api/products/{id}/related", handlers.RelatedProductsHandler(log, catalogService))
	router.Get("/api/settings", handlers.SettingsHandler(log, converter))

	// корзина и checkout привязаны к сессии (X-Session-ID)
	router.Group(func(r chi.Router) {
		r.Use(handlers.SessionMiddleware)
		r.Use(jwtmiddleware.NewOptionalJWTMiddleware())

		r.Get("/api/cart", handlers.GetCartHandler(log, cartService))
		r.Post("/api/cart/items", handlers.AddCartItemHandler(log, cartService))
		r.Put("/api/cart/items/{productId}", handlers.UpdateCartItemHandler(log, cartService))
		r.Delete("/api/cart/items/{productId}", handlers.RemoveCartItemHandler(log, cartService))
		r.Delete("/api/cart", handlers.ClearCartHandler(log, cartService))

		r.Post("/api/checkout", handlers.CheckoutHandler(log, checkoutService))
		r.Get("/api/checkout/status", handlers.CheckoutStatusHandler(log, checkoutService))
		r.Get("/api/notifications", handlers.NotificationsHandler(log, sink))
	})

	// заказы: требуется аутентификация
	router.Group(func(r chi.Router) {
		r.Use(jwtmiddleware.NewJWTMiddleware())
		r.Get("/api/orders", handlers.ListOrdersHandler(log, orderService))
		r.Post("/api/orders", handlers.CreateOrderHandler(log, orderService))
	})

	// админские ручки: аутентификация + роль admin
	router.Group(func(r chi.Router) {
		r.Use(jwtmiddleware.NewJWTMiddleware())
		r.Use(jwtmiddleware.RequireAdmin)
		r.Post("/api/admin/products", handlers.CreateProductHandler(log, adminService))
		r.Put("/api/admin/products/{id}", handlers.UpdateProductHandler(log, adminService))
		r.Delete("/api/admin/products/{id}", handlers.DeleteProductHandler(log, adminService))
		r.Get("/api/admin/stats", handlers.StatsHandler(log, adminService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
