// Package config loads startup configuration for bank and gateway
// processes. Flag parsing, YAML decoding, and env overrides are ambient
// bootstrap concerns (spec.md §1 calls process bootstrap and CLI argument
// parsing out of scope for the testable core) but still need a real,
// idiomatic home — this is it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/distbank/platform/internal/domain"
)

// BankConfig configures a single bank participant process.
type BankConfig struct {
	BankName     string `yaml:"bank_name"`
	ListenPort   string `yaml:"listen_port"`
	CertsDir     string `yaml:"certs_dir"`
	LogLevel     string `yaml:"log_level"`
	StoreBackend string `yaml:"store_backend"` // "memory" (default) or "postgres"
	PostgresDSN  string `yaml:"postgres_dsn"`
}

func (c *BankConfig) Validate() error {
	if c.BankName == "" {
		return fmt.Errorf("bank_name is required")
	}
	if c.ListenPort == "" {
		return fmt.Errorf("listen_port is required")
	}
	if c.StoreBackend == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("postgres_dsn is required when store_backend is postgres")
	}
	return nil
}

func (c *BankConfig) applyDefaults() {
	if c.CertsDir == "" {
		c.CertsDir = "certs"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.StoreBackend == "" {
		c.StoreBackend = "memory"
	}
}

func (c *BankConfig) applyEnvOverrides() {
	if v := os.Getenv("BANK_NAME"); v != "" {
		c.BankName = v
	}
	if v := os.Getenv("BANK_PORT"); v != "" {
		c.ListenPort = v
	}
	if v := os.Getenv("CERTS_DIR"); v != "" {
		c.CertsDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.PostgresDSN = v
		c.StoreBackend = "postgres"
	}
}

// LoadBankConfig reads a YAML config file and applies environment
// variable overrides, mirroring the getEnv-override pattern used for the
// banking-api example's main.go in the retrieved pack.
func LoadBankConfig(path string) (*BankConfig, error) {
	cfg := &BankConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read bank config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse bank config: %w", err)
		}
	}
	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GatewayConfig configures the gateway coordinator process.
type GatewayConfig struct {
	ListenPort string              `yaml:"listen_port"`
	DebugPort  string              `yaml:"debug_port"`
	CertsDir   string              `yaml:"certs_dir"`
	LogLevel   string              `yaml:"log_level"`
	Banks      domain.BankDirectory `yaml:"banks"`
}

func (c *GatewayConfig) Validate() error {
	if c.ListenPort == "" {
		return fmt.Errorf("listen_port is required")
	}
	if len(c.Banks) == 0 {
		return fmt.Errorf("at least one bank must be configured in the directory")
	}
	return nil
}

func (c *GatewayConfig) applyDefaults() {
	if c.CertsDir == "" {
		c.CertsDir = "certs"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DebugPort == "" {
		c.DebugPort = "9090"
	}
}

func (c *GatewayConfig) applyEnvOverrides() {
	if v := os.Getenv("GATEWAY_PORT"); v != "" {
		c.ListenPort = v
	}
	if v := os.Getenv("DEBUG_PORT"); v != "" {
		c.DebugPort = v
	}
	if v := os.Getenv("CERTS_DIR"); v != "" {
		c.CertsDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// LoadGatewayConfig reads the gateway's YAML config, which includes the
// static bank_name -> host:port directory described in spec.md §6.
func LoadGatewayConfig(path string) (*GatewayConfig, error) {
	cfg := &GatewayConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gateway config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse gateway config: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
