// Package config loads server settings.
//
// Sources are applied in order, later ones winning:
//  1. Built-in defaults
//  2. An optional YAML file
//  3. A .env file (never overrides variables already set in the environment)
//  4. Environment variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/simaogato/inventory-backend/internal/domain"
)

// Store backends
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRemote   = "remote"
)

const (
	defaultAPIToken = "dev-token"
	defaultGRPCAddr = ":8080"
	defaultHTTPAddr = ":8081"
)

// Config holds the server configuration
type Config struct {
	GRPCAddr string  `yaml:"grpc_addr"`
	HTTPAddr string  `yaml:"http_addr"`
	APIToken string  `yaml:"api_token"`
	TaxRate  float64 `yaml:"tax_rate"`

	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
}

// StoreConfig selects where products are synchronised
type StoreConfig struct {
	// Backend is one of "memory", "postgres" or "remote"
	Backend string `yaml:"backend"`

	// RemoteURL is the base URL of a products API, required for the remote backend
	RemoteURL string `yaml:"remote_url"`
}

// DatabaseConfig holds Postgres connection settings
// ConnStr, when set, is used as-is and the individual parts are ignored
type DatabaseConfig struct {
	ConnStr  string `yaml:"conn_str"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	if d.ConnStr != "" {
		return d.ConnStr
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// KafkaConfig holds event publishing settings
// Publishing is disabled when Brokers is empty
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Enabled reports whether any broker is configured
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		GRPCAddr: defaultGRPCAddr,
		HTTPAddr: defaultHTTPAddr,
		APIToken: defaultAPIToken,
		TaxRate:  domain.DefaultTaxRate,
		Store: StoreConfig{
			Backend: StoreMemory,
		},
		Database: DatabaseConfig{
			Host:     "localhost", // Default for local run without docker
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			Name:     "inventory",
		},
		Kafka: KafkaConfig{
			Topic: domain.LineItemRecordedTopic,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at configPath,
// the dotenv file at envFile and the process environment
// Empty paths are skipped; a missing envFile is not an error
func Load(configPath, envFile string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides cfg with every non-empty variable getenv returns
func applyEnv(cfg *Config, getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	setString("GRPC_ADDR", &cfg.GRPCAddr)
	setString("HTTP_ADDR", &cfg.HTTPAddr)
	setString("API_TOKEN", &cfg.APIToken)
	setString("STORE_BACKEND", &cfg.Store.Backend)
	setString("REMOTE_STORE_URL", &cfg.Store.RemoteURL)
	setString("DB_CONN_STR", &cfg.Database.ConnStr)
	setString("DB_HOST", &cfg.Database.Host)
	setString("DB_PORT", &cfg.Database.Port)
	setString("DB_USER", &cfg.Database.User)
	setString("DB_PASSWORD", &cfg.Database.Password)
	setString("DB_NAME", &cfg.Database.Name)
	setString("KAFKA_TOPIC", &cfg.Kafka.Topic)

	if v := getenv("TAX_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TAX_RATE %q: %w", v, err)
		}
		cfg.TaxRate = rate
	}

	if v := getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.GRPCAddr == "" {
		return errors.New("grpc address is required")
	}
	if c.HTTPAddr == "" {
		return errors.New("http address is required")
	}
	if c.TaxRate < 0 || c.TaxRate > 1 {
		return fmt.Errorf("tax rate must be between 0 and 1, got %v", c.TaxRate)
	}

	switch c.Store.Backend {
	case StoreMemory, StorePostgres:
	case StoreRemote:
		if c.Store.RemoteURL == "" {
			return errors.New("remote store requires a remote_url")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		return errors.New("kafka topic is required when brokers are set")
	}

	return nil
}
