package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DELIVERY_SES = "ses"
	DELIVERY_SNS = "sns"
)

type StorageConfig struct {
	TableName string
	IndexName string
}

type SecurityConfig struct {
	JWTSecret          string
	JWTExpirationHours int
	ResetTokenMinutes  int
	CorsOrigin         string
}

type ResetConfig struct {
	URL      string
	Delivery string
	SESEmail string
	TopicArn string
	// RelaySecret seals the reset link published to TopicArn.
	RelaySecret string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type Config struct {
	Storage  StorageConfig
	Security SecurityConfig
	Reset    ResetConfig
	Logging  LoggingConfig
}

func (sc *SecurityConfig) TokenTTL() time.Duration {
	return time.Duration(sc.JWTExpirationHours) * time.Hour
}

func (sc *SecurityConfig) ResetTTL() time.Duration {
	return time.Duration(sc.ResetTokenMinutes) * time.Minute
}

// Load reads the environment, preferring values already exported over the
// ones found in an optional .env file.
func Load() (*Config, error) {
	return LoadFor((*Config).Validate)
}

// LoadFor is Load with only the checks a single binary cares about.
func LoadFor(checks ...func(*Config) error) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}
	config := FromEnv()
	for _, check := range checks {
		if err := check(config); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}
	return config, nil
}

func FromEnv() *Config {
	return &Config{
		Storage: StorageConfig{
			TableName: getEnv("TABLE_NAME", ""),
			IndexName: getEnv("INDEX_NAME_1", "GS1"),
		},
		Security: SecurityConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			JWTExpirationHours: getEnvInt("JWT_EXPIRATION_HOURS", 24),
			ResetTokenMinutes:  getEnvInt("RESET_TOKEN_MINUTES", 15),
			CorsOrigin:         getEnv("CORS_ORIGIN", "*"),
		},
		Reset: ResetConfig{
			URL:         getEnv("RESET_URL", "http://localhost:5173/reset-password"),
			Delivery:    getEnv("RESET_DELIVERY", DELIVERY_SES),
			SESEmail:    getEnv("SES_EMAIL", ""),
			TopicArn:    getEnv("TOPIC_ARN", ""),
			RelaySecret: getEnv("RESET_RELAY_SECRET", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func (c *Config) Validate() error {
	for _, check := range []func(*Config) error{
		(*Config).ValidateStorage,
		(*Config).ValidateSecurity,
		(*Config).ValidateReset,
	} {
		if err := check(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) ValidateStorage() error {
	if c.Storage.TableName == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}
	return nil
}

func (c *Config) ValidateSecurity() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Security.JWTExpirationHours <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be positive: %d", c.Security.JWTExpirationHours)
	}
	if c.Security.ResetTokenMinutes <= 0 {
		return fmt.Errorf("RESET_TOKEN_MINUTES must be positive: %d", c.Security.ResetTokenMinutes)
	}
	return nil
}

func (c *Config) ValidateReset() error {
	switch c.Reset.Delivery {
	case DELIVERY_SES:
		if c.Reset.SESEmail == "" {
			return fmt.Errorf("SES_EMAIL is required for ses delivery")
		}
	case DELIVERY_SNS:
		if c.Reset.TopicArn == "" {
			return fmt.Errorf("TOPIC_ARN is required for sns delivery")
		}
		if c.Reset.RelaySecret == "" {
			return fmt.Errorf("RESET_RELAY_SECRET is required for sns delivery")
		}
	default:
		return fmt.Errorf("RESET_DELIVERY must be ses or sns: %s", c.Reset.Delivery)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
