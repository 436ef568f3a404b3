package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
// Часть параметров переопределяется переменными окружения (см. applyEnvOverrides)
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
	Jobs     JobsConfig     `toml:"jobs"`
}

// ServerConfig параметры HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
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

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BookingConfig политика бронирования
// Передаётся явной структурой в usecases и фоновые задачи, глобального состояния нет
type BookingConfig struct {
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
	HoldTimeoutMinutes  int    `toml:"hold_timeout_minutes"`
	LunchStart          string `toml:"lunch_start"` // "HH:MM"
	LunchEnd            string `toml:"lunch_end"`   // "HH:MM"
}

// JobsConfig интервалы фоновых задач в секундах
type JobsConfig struct {
	ReleaseAbandonedInterval int `toml:"release_abandoned_interval"`
	AutoConfirmInterval      int `toml:"auto_confirm_interval"`
	MarkCompletedInterval    int `toml:"mark_completed_interval"`
}

// Load читает конфигурацию из TOML файла и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
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
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "salon-booking-service",
			Path:        "/metrics",
		},
		Booking: BookingConfig{
			SlotDurationMinutes: 30,
			HoldTimeoutMinutes:  10,
			LunchStart:          "13:00",
			LunchEnd:            "14:00",
		},
		Jobs: JobsConfig{
			ReleaseAbandonedInterval: 60,
			AutoConfirmInterval:      300,
			MarkCompletedInterval:    900,
		},
	}
}

// applyEnvOverrides переопределяет политику бронирования и доступы к БД
// переменными окружения; окружение имеет приоритет над config.toml
func (c *Config) applyEnvOverrides() {
	if v, ok := lookupInt("SLOT_DURATION_MINUTES"); ok {
		c.Booking.SlotDurationMinutes = v
	}
	if v, ok := lookupInt("HOLD_TIMEOUT_MINUTES"); ok {
		c.Booking.HoldTimeoutMinutes = v
	}
	if v := os.Getenv("LUNCH_START"); v != "" {
		c.Booking.LunchStart = v
	}
	if v := os.Getenv("LUNCH_END"); v != "" {
		c.Booking.LunchEnd = v
	}

	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v, ok := lookupInt("DB_PORT"); ok {
		c.Database.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.DBName = v
	}
}

func (c *Config) validate() error {
	if c.Booking.SlotDurationMinutes <= 0 {
		return fmt.Errorf("config: slot_duration_minutes must be positive, got %d", c.Booking.SlotDurationMinutes)
	}
	if c.Booking.HoldTimeoutMinutes <= 0 {
		return fmt.Errorf("config: hold_timeout_minutes must be positive, got %d", c.Booking.HoldTimeoutMinutes)
	}
	return nil
}

func lookupInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
