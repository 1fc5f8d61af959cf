package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env-default:"development"` // environment
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Storage    StorageConfig    `yaml:"storage"`
	JWT        JWTConfig        `yaml:"jwt"`
	Payment    PaymentConfig    `yaml:"payment"`
	Currency   CurrencyConfig   `yaml:"currency"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// StorageConfig выбирает адаптер персистентности для стейт-контейнеров:
// memory — снимки живут до перезапуска, postgres — таблица kv_state
type StorageConfig struct {
	Driver   string `yaml:"driver" env-default:"memory"` // memory | postgres
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-default:"postgres"`
	Password string `yaml:"-" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env-default:"nexus"`
}

// JWTConfig настройка jwt
type JWTConfig struct {
	Secret   string `yaml:"-" env:"JWT_SECRET" env-required:"true"`
	TokenTTL int    `yaml:"token_ttl" env-default:"60"`
}

// PaymentConfig — параметры симуляции платёжных шлюзов.
// Вероятность отказа и задержки вынесены в конфигурацию,
// чтобы тесты могли подставить детерминированные значения
type PaymentConfig struct {
	PrimaryGateway     string        `yaml:"primary_gateway" env-default:"Stripe"`
	FallbackGateway    string        `yaml:"fallback_gateway" env-default:"PayTR"`
	PrimaryFailureRate float64       `yaml:"primary_failure_rate" env-default:"0.10"`
	PrimaryDelay       time.Duration `yaml:"primary_delay" env-default:"1500ms"`
	FallbackDelay      time.Duration `yaml:"fallback_delay" env-default:"1500ms"`
	TaxRate            float64       `yaml:"tax_rate" env-default:"0.08"`
}

// CurrencyConfig — демо-курсы валют относительно USD
type CurrencyConfig struct {
	USD float64 `yaml:"usd" env-default:"1"`
	EUR float64 `yaml:"eur" env-default:"0.92"`
	TRY float64 `yaml:"try" env-default:"32.50"`
}

// Rates собирает таблицу курсов для конвертера
func (c CurrencyConfig) Rates() map[string]float64 {
	return map[string]float64{
		"USD": c.USD,
		"EUR": c.EUR,
		"TRY": c.TRY,
	}
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s", configPath)
	}

	return &cfg
}
