// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Storage   StorageConfig
	Server    ServerConfig
	Auth      AuthConfig
	Checkout  CheckoutConfig
	Cart      CartConfig
	Currency  CurrencyConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Driver   string // badger or sqlite (default: badger)
	DataPath string // Base directory for persisted state
}

// Path returns the backend-specific location under DataPath.
func (s StorageConfig) Path() string {
	if s.Driver == "sqlite" {
		return filepath.Join(s.DataPath, "library.db")
	}
	return filepath.Join(s.DataPath, "badger")
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed browser origins (default: *)
}

// AuthConfig holds identity provider configuration.
type AuthConfig struct {
	// AdminEmail is the single account that receives the admin role.
	AdminEmail string
	// TokenKey is the hex PASETO v4 key. Empty means load or generate
	// <data>/session.key.
	TokenKey      string
	TokenDuration time.Duration
}

// CheckoutConfig holds simulated payment configuration.
type CheckoutConfig struct {
	Delay time.Duration // Simulated processing time (default: 2s)
}

// CartConfig holds cart scoping configuration.
type CartConfig struct {
	Scope string // global or user (default: global)
}

// CurrencyConfig holds price formatting configuration.
type CurrencyConfig struct {
	Code   string // ISO 4217 (default: INR)
	Locale string // BCP 47 (default: en-IN)
}

// RateLimitConfig limits session and checkout requests per client.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LoadConfig loads configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("library-server", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")

	storageDriver := fs.String("storage-driver", "", "Storage backend (badger, sqlite)")
	dataPath := fs.String("data-path", "", "Base path for persisted state")

	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-origins", "", "Comma separated allowed origins (default: *)")

	adminEmail := fs.String("admin-email", "", "Email that receives the admin role")
	tokenDuration := fs.String("token-duration", "", "Session token lifetime (e.g., 720h)")

	checkoutDelay := fs.String("checkout-delay", "", "Simulated checkout delay (default: 2s)")
	cartScope := fs.String("cart-scope", "", "Cart scope (global, user)")
	currencyCode := fs.String("currency", "", "ISO 4217 currency code (default: INR)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists. Variables already in the environment win.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver:   getConfigValue(*storageDriver, "STORAGE_DRIVER", "badger"),
			DataPath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		Auth: AuthConfig{
			AdminEmail: getConfigValue(*adminEmail, "ADMIN_EMAIL", "sutapajana353@gmail.com"),
			TokenKey:   getConfigValue("", "TOKEN_KEY", ""),
		},
		Cart: CartConfig{
			Scope: getConfigValue(*cartScope, "CART_SCOPE", "global"),
		},
		Currency: CurrencyConfig{
			Code:   getConfigValue(*currencyCode, "CURRENCY", "INR"),
			Locale: getConfigValue("", "CURRENCY_LOCALE", "en-IN"),
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloatConfigValue("", "RATE_LIMIT_RPS", 2),
			Burst: getIntConfigValue("", "RATE_LIMIT_BURST", 10),
		},
	}

	durations := []struct {
		flagValue, envKey, def string
		dest                   *time.Duration
	}{
		{*readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s", &cfg.Server.WriteTimeout},
		{*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{*tokenDuration, "TOKEN_DURATION", "720h", &cfg.Auth.TokenDuration},
		{*checkoutDelay, "CHECKOUT_DELAY", "2s", &cfg.Checkout.Delay},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flagValue, d.envKey, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.envKey, raw, err)
		}
		*d.dest = parsed
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Storage.Driver != "badger" && c.Storage.Driver != "sqlite" {
		return fmt.Errorf("invalid storage driver: %s (must be badger or sqlite)", c.Storage.Driver)
	}

	if c.Storage.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	if c.Cart.Scope != "global" && c.Cart.Scope != "user" {
		return fmt.Errorf("invalid cart scope: %s (must be global or user)", c.Cart.Scope)
	}

	if c.Auth.AdminEmail == "" {
		return errors.New("admin email cannot be empty")
	}

	if c.Checkout.Delay < 0 {
		return errors.New("checkout delay cannot be negative")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "SutapasLibrary", "data")

	expanded, err := expandPath(c.Storage.DataPath, defaultPath)
	if err != nil {
		return err
	}
	c.Storage.DataPath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		return defaultValue
	}
	return result
}

// splitList splits a comma separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
