package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	"github.com/linemk/nexus-shop/internal/config"
	"github.com/linemk/nexus-shop/internal/storage"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	KV     storage.KV
	db     *sql.DB // nil при driver=memory
}

// NewApp создаёт новый экземпляр App и выбирает адаптер персистентности:
// memory (по умолчанию) или postgres (таблица kv_state, см. cmd/migrator)
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: log,
	}

	switch cfg.Storage.Driver {
	case "", "memory":
		app.KV = storage.NewMemoryKV()
	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.Storage.User,
			cfg.Storage.Password,
			cfg.Storage.Host,
			cfg.Storage.Port,
			cfg.Storage.Name,
		)
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		app.db = db
		app.KV = storage.NewPostgresKV(db)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}

	return app, nil
}

// Close освобождает ресурсы приложения
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
