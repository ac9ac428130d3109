// Package config загружает конфигурацию сервиса.
//
// Порядок применения: значения по умолчанию -> config.toml -> .env -> переменные окружения
// с префиксом BOOKING (например BOOKING_DATABASE_HOST, BOOKING_SCHEDULING_TIMEZONE).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "BOOKING"

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	ListingService ListingServiceConfig `toml:"listing_service" envconfig:"LISTING_SERVICE"`
	Redis          RedisConfig          `toml:"redis"`
	Scheduling     SchedulingConfig     `toml:"scheduling"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

// ListingServiceConfig клиент сервиса объявлений (источник ресурсов)
type ListingServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды

	// Circuit breaker
	BreakerMaxFailures uint32 `toml:"breaker_max_failures" envconfig:"BREAKER_MAX_FAILURES"`
	BreakerOpenTimeout int    `toml:"breaker_open_timeout" envconfig:"BREAKER_OPEN_TIMEOUT"` // секунды
	BreakerMaxRequests uint32 `toml:"breaker_max_requests" envconfig:"BREAKER_MAX_REQUESTS"`
}

// RedisConfig кэш занятых интервалов
type RedisConfig struct {
	Enabled        bool   `toml:"enabled"`
	Addr           string `toml:"addr"`
	Password       string `toml:"password"`
	DB             int    `toml:"db"`
	BusyTTLSeconds int    `toml:"busy_ttl_seconds" envconfig:"BUSY_TTL_SECONDS"`
}

type SchedulingConfig struct {
	Timezone            string `toml:"timezone"`
	SerializableRetries int    `toml:"serializable_retries" envconfig:"SERIALIZABLE_RETRIES"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "agendei-booking",
		},
		ListingService: ListingServiceConfig{
			URL:                "http://localhost:8081",
			Timeout:            5,
			BreakerMaxFailures: 5,
			BreakerOpenTimeout: 30,
			BreakerMaxRequests: 1,
		},
		Redis: RedisConfig{
			Addr:           "localhost:6379",
			BusyTTLSeconds: 300,
		},
		Scheduling: SchedulingConfig{
			Timezone:            "UTC",
			SerializableRetries: 3,
		},
	}
}

// Load загружает конфигурацию. Отсутствующий файл path не считается ошибкой.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.ListingService.URL == "" {
		return fmt.Errorf("%w: listing_service.url is required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Scheduling.SerializableRetries < 0 {
		return fmt.Errorf("%w: scheduling.serializable_retries must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Location часовой пояс, в котором применяется недельное расписание ресурсов
func (c *Config) Location() (*time.Location, error) {
	if c.Scheduling.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Scheduling.Timezone)
}

// Seconds переводит целое количество секунд из конфигурации в time.Duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
