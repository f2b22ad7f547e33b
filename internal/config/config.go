package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config корневая конфигурация сервиса, загружается из config.toml
// Секреты подставляются из окружения через ${VAR} (см. .env)
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	SMTP     SMTPConfig     `toml:"smtp"`
	GCal     GCalConfig     `toml:"gcal"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к хранилищу
// Driver: "postgres" или "memory" (in-memory хранилище для тестов и локальной разработки)
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к Postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// InMemory возвращает true, если выбрано in-memory хранилище
func (d DatabaseConfig) InMemory() bool {
	return d.Driver == "memory"
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// AuthConfig настройки аутентификации
type AuthConfig struct {
	JWTSecret        string `toml:"jwt_secret"`
	AccessTTLMinutes int    `toml:"access_ttl_minutes"`
	BcryptCost       int    `toml:"bcrypt_cost"`
}

// BookingConfig бизнес-настройки бронирования
// EnforceAdmission = false переводит проверку допуска в advisory-режим:
// переполнение логируется, но бронирование создается
type BookingConfig struct {
	EnforceAdmission bool   `toml:"enforce_admission"`
	DayStart         string `toml:"day_start"` // "09:00"
	DayEnd           string `toml:"day_end"`   // "18:00"
	SlotStepMinutes  int    `toml:"slot_step_minutes"`
}

// RedisConfig настройки redis (кэш calendar-data и rate limiting)
type RedisConfig struct {
	Enabled           bool   `toml:"enabled"`
	Addr              string `toml:"addr"`
	Password          string `toml:"password"`
	DB                int    `toml:"db"`
	CacheTTLSeconds   int    `toml:"cache_ttl_seconds"`
	RateLimitRequests int    `toml:"rate_limit_requests"`
	RateLimitWindow   int    `toml:"rate_limit_window"` // секунды
}

// RabbitMQConfig настройки очереди уведомлений
type RabbitMQConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Queue   string `toml:"queue"`
}

// SMTPConfig настройки исходящей почты
type SMTPConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	From     string `toml:"from"`
	Password string `toml:"password"`
}

// GCalConfig настройки синхронизации с Google Calendar
type GCalConfig struct {
	Enabled      bool   `toml:"enabled"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RefreshToken string `toml:"refresh_token"`
	CalendarID   string `toml:"calendar_id"`
	Timeout      int    `toml:"timeout"` // секунды
}

// Load читает конфигурацию из toml-файла
// Перед чтением подгружает .env (если есть) и разворачивает ${VAR}
// ссылки на переменные окружения внутри файла
func Load(path string) (*Config, error) {
	// .env опционален: в проде переменные приходят из окружения
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	expanded := os.Expand(string(raw), func(key string) string {
		return os.Getenv(key)
	})

	var cfg Config
	if err := toml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "memory" {
		return fmt.Errorf("config: database.driver must be \"postgres\" or \"memory\", got %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret is required")
	}
	if c.Booking.SlotStepMinutes <= 0 {
		return fmt.Errorf("config: booking.slot_step_minutes must be positive")
	}
	return nil
}
