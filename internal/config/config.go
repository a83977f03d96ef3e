// Package config загрузка конфигурации сервиса из TOML
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	// ErrReadConfig не удалось прочитать или распарсить файл
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig некорректные значения в конфиге
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
	Jobs     JobsConfig     `toml:"jobs"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки кэша правил ценообразования
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	RulesTTL int    `toml:"rules_ttl"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig правила проживания и бронирования
type BookingConfig struct {
	MinNights               int    `toml:"min_nights"`
	PeakMinNights           int    `toml:"peak_min_nights"`
	MaxNights               int    `toml:"max_nights"`
	PeakStart               string `toml:"peak_start"` // MM-DD
	PeakEnd                 string `toml:"peak_end"`   // MM-DD
	MinNoticeHours          int    `toml:"min_notice_hours"`
	PeakMinNoticeDays       int    `toml:"peak_min_notice_days"`
	LateArrivalGraceMinutes int    `toml:"late_arrival_grace_minutes"`
}

// PeakStartMonthDay разбирает начало пикового сезона
func (b BookingConfig) PeakStartMonthDay() (time.Month, int, error) {
	return parseMonthDay(b.PeakStart)
}

// PeakEndMonthDay разбирает конец пикового сезона
func (b BookingConfig) PeakEndMonthDay() (time.Month, int, error) {
	return parseMonthDay(b.PeakEnd)
}

// JobsConfig настройки фоновых задач
type JobsConfig struct {
	LateArrivalsEnabled  bool `toml:"late_arrivals_enabled"`
	LateArrivalsInterval int  `toml:"late_arrivals_interval"` // секунды
}

// Load читает конфиг из файла, подставляет значения по умолчанию
// и переопределяет секреты из переменных окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "camp_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			RulesTTL: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "camp-booking",
		},
		Booking: BookingConfig{
			MinNights:               2,
			PeakMinNights:           3,
			MaxNights:               14,
			PeakStart:               "06-01",
			PeakEnd:                 "08-31",
			MinNoticeHours:          48,
			PeakMinNoticeDays:       7,
			LateArrivalGraceMinutes: 120,
		},
		Jobs: JobsConfig{
			LateArrivalsEnabled:  true,
			LateArrivalsInterval: 600,
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

// Validate проверяет значения конфига
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Booking.MinNights < 1 || c.Booking.PeakMinNights < 1 {
		return fmt.Errorf("%w: booking minimum nights must be at least 1", ErrInvalidConfig)
	}
	if c.Booking.MaxNights < c.Booking.MinNights || c.Booking.MaxNights < c.Booking.PeakMinNights {
		return fmt.Errorf("%w: booking.max_nights is below the minimum", ErrInvalidConfig)
	}
	if _, _, err := c.Booking.PeakStartMonthDay(); err != nil {
		return fmt.Errorf("%w: booking.peak_start: %v", ErrInvalidConfig, err)
	}
	if _, _, err := c.Booking.PeakEndMonthDay(); err != nil {
		return fmt.Errorf("%w: booking.peak_end: %v", ErrInvalidConfig, err)
	}
	if c.Booking.MinNoticeHours < 0 || c.Booking.PeakMinNoticeDays < 0 || c.Booking.LateArrivalGraceMinutes < 0 {
		return fmt.Errorf("%w: booking notice and grace values must be non-negative", ErrInvalidConfig)
	}
	if c.Jobs.LateArrivalsEnabled && c.Jobs.LateArrivalsInterval <= 0 {
		return fmt.Errorf("%w: jobs.late_arrivals_interval must be positive", ErrInvalidConfig)
	}
	return nil
}

func parseMonthDay(s string) (time.Month, int, error) {
	// 2000 - високосный год, чтобы 02-29 считался корректным
	t, err := time.Parse("2006-01-02", "2000-"+s)
	if err != nil {
		return 0, 0, fmt.Errorf("expected MM-DD, got %q", s)
	}
	return t.Month(), t.Day(), nil
}
