package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	// AdminPIN is the 4-digit admin panel PIN. It is bcrypt-hashed at
	// startup by the auth service; only the hash is compared per request.
	AdminPIN string

	Paths    PathsConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Sync     SyncConfig
	Upload   UploadConfig
}

// PathsConfig contains the on-disk layout of the flat-file stores.
type PathsConfig struct {
	ConfigDir string // store-config.json lives here
	DataDir   string // orders.json, cart.json, admin-settings.json, product-prices.json
	UploadDir string // payment-screenshots/, qr-codes/, product-images/
}

// RedisConfig contains optional Redis connection parameters. Redis is used
// only as a shared backend for the rate limiter; when Host is empty the
// limiter falls back to an in-process store.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// TelegramConfig contains fallback bot credentials for order notifications.
// Values stored via the admin settings endpoint take precedence.
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// SyncConfig configures the MobileAPI.dev catalog sync worker.
type SyncConfig struct {
	MobileAPIKey string
	Interval     time.Duration
}

// UploadConfig contains file upload limits in bytes.
type UploadConfig struct {
	MaxScreenshotSize int64
	MaxQRSize         int64
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.AdminPIN = getEnv("ADMIN_PIN", "1161")

	// Flat-file store layout
	cfg.Paths = PathsConfig{
		ConfigDir: getEnv("CONFIG_DIR", "config"),
		DataDir:   getEnv("DATA_DIR", "data"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}

	// Redis (optional, rate limiter backend)
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Telegram fallback credentials
	cfg.Telegram = TelegramConfig{
		BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
	}

	// Upload limits
	cfg.Upload = UploadConfig{
		MaxScreenshotSize: getEnvInt64("MAX_SCREENSHOT_SIZE", 10<<20),
		MaxQRSize:         getEnvInt64("MAX_QR_SIZE", 5<<20),
	}

	// Catalog sync worker
	cfg.Sync.MobileAPIKey = getEnv("MOBILEAPI_DEV_KEY", "")
	var err error
	if cfg.Sync.Interval, err = parseDurationEnv("DEVICE_SYNC_INTERVAL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid DEVICE_SYNC_INTERVAL: %w", err)
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for admin authentication")
	}

	if len(cfg.AdminPIN) < 4 {
		return nil, errors.New("ADMIN_PIN must be at least 4 digits")
	}

	return cfg, nil
}

// StoreConfigPath returns the path of the catalog + payment config file.
func (c *Config) StoreConfigPath() string {
	return c.Paths.ConfigDir + "/store-config.json"
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvInt64 returns the value of an environment variable as an int64 or a default if empty/invalid.
func getEnvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
