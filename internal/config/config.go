package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Delivery DeliveryConfig
	Stripe   StripeConfig
	PayMongo PayMongoConfig
	PayPal   PayPalConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds portal token configuration.
type AuthConfig struct {
	JWTSecret    string
	TokenTTLMins int
}

// DeliveryConfig holds fee, ETA and cancellation thresholds.
type DeliveryConfig struct {
	MinFeePhp            float64
	PerKmRatePhp         float64
	MaxRadiusKm          float64
	HubLat               float64
	HubLng               float64
	PriorityFeePhp       float64
	CancelWindowMinutes  int
	DefaultCommissionPct float64
}

// StripeConfig holds card/hosted-session gateway configuration.
type StripeConfig struct {
	SecretKey string
	BaseURL   string
}

// PayMongoConfig holds GCash gateway configuration.
type PayMongoConfig struct {
	SecretKey string
	BaseURL   string
}

// PayPalConfig holds PayPal gateway configuration. Live selects the
// production endpoint; otherwise the sandbox is used.
type PayPalConfig struct {
	ClientID string
	Secret   string
	Live     bool
	BaseURL  string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "kusina"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			TokenTTLMins: getEnvAsInt("JWT_TTL_MINUTES", 720),
		},
		Delivery: DeliveryConfig{
			MinFeePhp:            getEnvAsFloat("DELIVERY_MIN_FEE_PHP", 100),
			PerKmRatePhp:         getEnvAsFloat("DELIVERY_PER_KM_RATE_PHP", 12.5),
			MaxRadiusKm:          getEnvAsFloat("DELIVERY_MAX_RADIUS_KM", 10),
			HubLat:               getEnvAsFloat("DELIVERY_HUB_LAT", 0),
			HubLng:               getEnvAsFloat("DELIVERY_HUB_LNG", 0),
			PriorityFeePhp:       getEnvAsFloat("PRIORITY_FEE_PHP", 50),
			CancelWindowMinutes:  getEnvAsInt("CANCEL_WINDOW_MINUTES", 5),
			DefaultCommissionPct: getEnvAsFloat("DEFAULT_COMMISSION_PCT", 30),
		},
		Stripe: StripeConfig{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			BaseURL:   getEnv("STRIPE_BASE_URL", "https://api.stripe.com"),
		},
		PayMongo: PayMongoConfig{
			SecretKey: getEnv("PAYMONGO_SECRET_KEY", ""),
			BaseURL:   getEnv("PAYMONGO_BASE_URL", "https://api.paymongo.com"),
		},
		PayPal: PayPalConfig{
			ClientID: getEnv("PAYPAL_CLIENT_ID", ""),
			Secret:   getEnv("PAYPAL_SECRET", ""),
			Live:     getEnvAsBool("PAYPAL_LIVE", false),
			BaseURL:  getEnv("PAYPAL_BASE_URL", ""),
		},
	}

	if cfg.PayPal.BaseURL == "" {
		if cfg.PayPal.Live {
			cfg.PayPal.BaseURL = "https://api-m.paypal.com"
		} else {
			cfg.PayPal.BaseURL = "https://api-m.sandbox.paypal.com"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Delivery.MinFeePhp < 0 {
		return fmt.Errorf("minimum delivery fee cannot be negative")
	}

	if c.Delivery.PerKmRatePhp <= 0 {
		return fmt.Errorf("per-km delivery rate must be positive")
	}

	if c.Delivery.MaxRadiusKm <= 0 {
		return fmt.Errorf("max delivery radius must be positive")
	}

	if c.Delivery.CancelWindowMinutes < 1 {
		return fmt.Errorf("cancel window must be at least 1 minute")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
