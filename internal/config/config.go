package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	Debug        bool
	Timezone     string
	StoreName    string
	StoreAddress string
	StorePhone   string
}

// StorageConfig selects where store state is persisted: postgres, redis or memory
type StorageConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type PrinterConfig struct {
	Type    string // usb, network or none
	USBPath string
	Address string
	Width   int
}

type MetricsConfig struct {
	Enabled bool
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		slog.Warn(".env file not found, using environment variables", "error", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:         viper.GetString("APP_NAME"),
			Env:          viper.GetString("APP_ENV"),
			Port:         viper.GetString("APP_PORT"),
			Debug:        viper.GetBool("APP_DEBUG"),
			Timezone:     viper.GetString("APP_TIMEZONE"),
			StoreName:    viper.GetString("STORE_NAME"),
			StoreAddress: viper.GetString("STORE_ADDRESS"),
			StorePhone:   viper.GetString("STORE_PHONE"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			Prefix:   viper.GetString("REDIS_PREFIX"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "retail-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_TIMEZONE", "America/Argentina/Buenos_Aires")
	viper.SetDefault("STORE_NAME", "Cuatro Vientos")
	viper.SetDefault("STORAGE_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "retail")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_PREFIX", "retail")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("METRICS_ENABLED", true)
}

// Location resolves the business time zone, falling back to UTC
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("unknown timezone, using UTC", "timezone", c.Timezone)
		return time.UTC
	}
	return loc
}

// IsDevelopment reports whether the app runs in a development environment
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
