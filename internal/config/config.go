package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// ServiceConfig holds all configuration for the rental service, read from
// RENTAL_-prefixed environment variables.
type ServiceConfig struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	AppEnv   string `envconfig:"APP_ENV" default:"development"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"rental"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"rental"`
	DBName     string `envconfig:"DB_NAME" default:"rental"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`

	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"migrations"`
}

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	var cfg ServiceConfig
	if err := envconfig.Process("RENTAL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// DSN returns the Postgres connection string.
func (c *ServiceConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// DatabaseURL returns the Postgres URL used by the migration runner.
func (c *ServiceConfig) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
