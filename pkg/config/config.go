// Package config loads service configuration from AUDILOG_* environment
// variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "AUDILOG"

// Storage selects the durable key-value backend shared by the ledger and
// storefront services.
type Storage struct {
	Driver      string `envconfig:"AUDILOG_STORAGE_DRIVER" default:"file"`
	FilePath    string `envconfig:"AUDILOG_STORAGE_FILE" default:"audilog-storage.json"`
	PostgresDSN string `envconfig:"AUDILOG_STORAGE_POSTGRES_DSN"`
	RedisURL    string `envconfig:"AUDILOG_STORAGE_REDIS_URL"`
}

type Metrics struct {
	Enabled bool   `envconfig:"AUDILOG_METRICS_ENABLED" default:"false"`
	Token   string `envconfig:"AUDILOG_METRICS_TOKEN"`
}

type Ledger struct {
	Port    string `envconfig:"AUDILOG_LEDGER_PORT" default:"8091"`
	Storage Storage
	Metrics Metrics
}

type Storefront struct {
	Port    string `envconfig:"AUDILOG_STOREFRONT_PORT" default:"8092"`
	Storage Storage
	Metrics Metrics
}

type Gateway struct {
	Port          string `envconfig:"AUDILOG_GATEWAY_PORT" default:"8090"`
	LedgerURL     string `envconfig:"AUDILOG_LEDGER_URL" default:"http://localhost:8091"`
	StorefrontURL string `envconfig:"AUDILOG_STOREFRONT_URL" default:"http://localhost:8092"`
	Metrics       Metrics
}

func LoadLedger() (*Ledger, error) {
	var cfg Ledger
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func LoadStorefront() (*Storefront, error) {
	var cfg Storefront
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func LoadGateway() (*Gateway, error) {
	var cfg Gateway
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
