package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
	"gopkg.in/yaml.v3"
)

// Config carries settings for the API and worker processes.
// Values come from the optional CONFIG_FILE (YAML) first, then environment variables override them.
type Config struct {
	Port                     string `yaml:"port"`
	PostgresDSN              string `yaml:"postgresDsn"`
	ProductServiceURL        string `yaml:"productServiceUrl"`
	PaymentServiceURL        string `yaml:"paymentServiceUrl"`
	DownstreamTimeoutSeconds int    `yaml:"downstreamTimeoutSeconds"`
	LookupMaxRetries         uint64 `yaml:"lookupMaxRetries"`
	TemporalAddress          string `yaml:"temporalAddress"`
	TemporalNamespace        string `yaml:"temporalNamespace"`
	TemporalDisabled         bool   `yaml:"temporalDisabled"`

	// DownstreamTimeout is derived from DownstreamTimeoutSeconds.
	DownstreamTimeout time.Duration `yaml:"-"`
}

func defaultConfig() Config {
	return Config{
		Port:                     "8080",
		ProductServiceURL:        "http://localhost:8081",
		PaymentServiceURL:        "http://localhost:8082",
		DownstreamTimeoutSeconds: 5,
		TemporalAddress:          client.DefaultHostPort,
		TemporalNamespace:        client.DefaultNamespace,
	}
}

// LoadConfig applies defaults, the optional YAML file and environment variables, then validates.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = envDefault("PORT", cfg.Port)
	cfg.PostgresDSN = envDefault("POSTGRES_DSN", cfg.PostgresDSN)
	cfg.ProductServiceURL = envDefault("PRODUCT_SERVICE_URL", cfg.ProductServiceURL)
	cfg.PaymentServiceURL = envDefault("PAYMENT_SERVICE_URL", cfg.PaymentServiceURL)
	cfg.TemporalAddress = envDefault("TEMPORAL_ADDRESS", cfg.TemporalAddress)
	cfg.TemporalNamespace = envDefault("TEMPORAL_NAMESPACE", cfg.TemporalNamespace)
	if raw := strings.TrimSpace(os.Getenv("TEMPORAL_DISABLED")); raw != "" {
		cfg.TemporalDisabled = isTruthy(raw)
	}
	if raw := strings.TrimSpace(os.Getenv("DOWNSTREAM_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("DOWNSTREAM_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.DownstreamTimeoutSeconds = seconds
	}
	if raw := strings.TrimSpace(os.Getenv("LOOKUP_MAX_RETRIES")); raw != "" {
		retries, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("LOOKUP_MAX_RETRIES must be a non-negative integer")
		}
		cfg.LookupMaxRetries = retries
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.DownstreamTimeout = time.Duration(cfg.DownstreamTimeoutSeconds) * time.Second
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("port must not be empty"))
	}
	if strings.TrimSpace(c.ProductServiceURL) == "" {
		errs = append(errs, errors.New("product service URL must not be empty"))
	}
	if strings.TrimSpace(c.PaymentServiceURL) == "" {
		errs = append(errs, errors.New("payment service URL must not be empty"))
	}
	if c.DownstreamTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("DOWNSTREAM_TIMEOUT_SECONDS must be a positive integer"))
	}
	return errors.Join(errs...)
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
