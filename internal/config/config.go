package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Redis    RedisConfig
	Sheets   SheetsConfig
	HTX      HTXConfig
	BSC      BSCConfig
	Ledger   LedgerConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// RedisConfig configures the distributed ledger lock. An empty Address disables it.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	LockTTL  time.Duration
}

type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	Range           string
}

type HTXConfig struct {
	BaseURL   string
	AccessKey string
	SecretKey string
	Currency  string
}

type BSCConfig struct {
	BaseURL           string
	APIKey            string
	TokenContract     string
	WalletAddress     string
	TokenDecimals     int32
	RequestsPerSecond float64
}

type LedgerConfig struct {
	ExchangeBalanceCode string
}

type CronConfig struct {
	WalletSyncInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "finops"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	lockTTL, err := time.ParseDuration(getEnv("REDIS_LOCK_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_LOCK_TTL: %w", err)
	}

	config.Redis = RedisConfig{
		Address:  getEnv("REDIS_ADDRESS", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
		LockTTL:  lockTTL,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Google Sheets import
	config.Sheets = SheetsConfig{
		CredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
		SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		Range:           getEnv("SHEETS_RANGE", "Daily!A1:M"),
	}

	// HTX exchange
	config.HTX = HTXConfig{
		BaseURL:   getEnv("HTX_BASE_URL", "https://api.huobi.pro"),
		AccessKey: getEnv("HTX_ACCESS_KEY", ""),
		SecretKey: getEnv("HTX_SECRET_KEY", ""),
		Currency:  getEnv("HTX_CURRENCY", "usdt"),
	}

	// BSC explorer
	tokenDecimals, err := strconv.Atoi(getEnv("BSC_TOKEN_DECIMALS", "18"))
	if err != nil {
		return nil, fmt.Errorf("invalid BSC_TOKEN_DECIMALS: %w", err)
	}
	rps, err := strconv.ParseFloat(getEnv("BSC_REQUESTS_PER_SECOND", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid BSC_REQUESTS_PER_SECOND: %w", err)
	}

	config.BSC = BSCConfig{
		BaseURL:           getEnv("BSC_BASE_URL", "https://api.bscscan.com/api"),
		APIKey:            getEnv("BSC_API_KEY", ""),
		TokenContract:     getEnv("BSC_TOKEN_CONTRACT", "0x55d398326f99059ff775485246999027b3197955"),
		WalletAddress:     getEnv("BSC_WALLET_ADDRESS", ""),
		TokenDecimals:     int32(tokenDecimals),
		RequestsPerSecond: rps,
	}

	config.Ledger = LedgerConfig{
		ExchangeBalanceCode: strings.ToUpper(getEnv("LEDGER_EXCHANGE_BALANCE_CODE", "EXCHANGE")),
	}

	walletSync, err := time.ParseDuration(getEnv("CRON_WALLET_SYNC_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_WALLET_SYNC_INTERVAL: %w", err)
	}
	config.Cron = CronConfig{WalletSyncInterval: walletSync}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if c.Ledger.ExchangeBalanceCode == "" {
		return fmt.Errorf("LEDGER_EXCHANGE_BALANCE_CODE must not be empty")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// HTXEnabled reports whether exchange credentials are configured.
func (c *Config) HTXEnabled() bool {
	return c.HTX.AccessKey != "" && c.HTX.SecretKey != ""
}

// BSCEnabled reports whether the explorer client has enough to query transfers.
func (c *Config) BSCEnabled() bool {
	return c.BSC.APIKey != "" && c.BSC.WalletAddress != ""
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
