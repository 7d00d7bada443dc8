package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Переменные окружения для секретов
const (
	EnvDBPassword    = "BARBER_DB_PASSWORD"
	EnvRedisPassword = "BARBER_REDIS_PASSWORD"
	EnvSMSToken      = "BARBER_SMS_TOKEN"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Redis        RedisConfig        `toml:"redis"`
	Shop         ShopConfig         `toml:"shop"`
	Booking      BookingConfig      `toml:"booking"`
	Verification VerificationConfig `toml:"verification"`
	SMS          SMSConfig          `toml:"sms"`
	Kafka        KafkaConfig        `toml:"kafka"`
	Staff        StaffConfig        `toml:"staff"`
	Barbers      []BarberConfig     `toml:"barbers"`
	Services     []ServiceConfig    `toml:"services"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

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
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ShopConfig параметры расписания барбершопа
type ShopConfig struct {
	Name                string   `toml:"name"`
	Timezone            string   `toml:"timezone"`
	OpenTime            string   `toml:"open_time"`  // "11:00"
	CloseTime           string   `toml:"close_time"` // "20:00"
	GranularityMinutes  int      `toml:"granularity_minutes"`
	BufferMinutes       int      `toml:"buffer_minutes"`
	AllowPastSlotsToday bool     `toml:"allow_past_slots_today"`
	ClosedWeekdays      []string `toml:"closed_weekdays"` // "Tuesday"
	BookingHorizonDays  int      `toml:"booking_horizon_days"`
}

type BookingConfig struct {
	RequirePhoneVerification bool `toml:"require_phone_verification"`
	ConfirmationCodeLength   int  `toml:"confirmation_code_length"`
}

type VerificationConfig struct {
	CodeLength         int `toml:"code_length"`
	CodeTTLMinutes     int `toml:"code_ttl_minutes"`
	VerifiedTTLMinutes int `toml:"verified_ttl_minutes"`
	MaxAttempts        int `toml:"max_attempts"`
}

type SMSConfig struct {
	Enabled    bool   `toml:"enabled"`
	URL        string `toml:"url"`
	Token      string `toml:"token"`
	FromNumber string `toml:"from_number"`
	Timeout    int    `toml:"timeout"` // секунды
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type StaffConfig struct {
	SessionTTLHours int            `toml:"session_ttl_hours"`
	Accounts        []StaffAccount `toml:"accounts"`
}

// StaffAccount учетная запись сотрудника. Пустой Barber означает менеджера всех барберов
type StaffAccount struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"` // bcrypt
	Barber       string `toml:"barber"`
}

type BarberConfig struct {
	Name           string `toml:"name"`
	SurchargeCents int64  `toml:"surcharge_cents"`
	NotifyPhone    string `toml:"notify_phone"`
}

type ServiceConfig struct {
	Name            string `toml:"name"`
	PriceCents      int64  `toml:"price_cents"`
	DurationMinutes int    `toml:"duration_minutes"`
}

// Load читает TOML файл, применяет значения по умолчанию, переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	// Списки из файла заменяют, а не дополняют значения по умолчанию
	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if meta.IsDefined("barbers") {
		cfg.Barbers = raw.Barbers
	}
	if meta.IsDefined("services") {
		cfg.Services = raw.Services
	}
	if meta.IsDefined("shop", "closed_weekdays") {
		cfg.Shop.ClosedWeekdays = raw.Shop.ClosedWeekdays
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv(EnvRedisPassword); ok {
		c.Redis.Password = v
	}
	if v, ok := os.LookupEnv(EnvSMSToken); ok {
		c.SMS.Token = v
	}
}
