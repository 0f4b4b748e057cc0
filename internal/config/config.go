// Package config loads server configuration from defaults, an optional
// TOML file and AIMSIM_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port       int    `toml:"port"`
	APIToken   string `toml:"api_token"`
	CORSOrigin string `toml:"cors_origin"`
}

// NetworkConfig identifies the chain environment the simulation
// impersonates when synthesizing company addresses.
type NetworkConfig struct {
	Name       string `toml:"name"`
	NodeURL    string `toml:"node_url"`
	AccountKey string `toml:"account_key"`
}

// SeedConfig controls launch-company seeding.
type SeedConfig struct {
	Enabled bool `toml:"enabled"`
}

// Config is the root configuration.
type Config struct {
	Server   ServerConfig  `toml:"server"`
	Network  NetworkConfig `toml:"network"`
	Seed     SeedConfig    `toml:"seed"`
	LogLevel string        `toml:"log_level"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       8080,
			CORSOrigin: "*",
		},
		Network: NetworkConfig{
			Name:    "testnet",
			NodeURL: "https://fullnode.testnet.aptoslabs.com/v1",
		},
		Seed:     SeedConfig{Enabled: true},
		LogLevel: "info",
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment variables apply. A .env file in the working
// directory is honored if present.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decoding config file %q: %w", path, err)
		}
	}

	// Missing .env is fine.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setStr(&c.Server.APIToken, "AIMSIM_API_TOKEN")
	setStr(&c.Server.CORSOrigin, "AIMSIM_CORS_ORIGIN")
	setStr(&c.Network.Name, "AIMSIM_NETWORK")
	setStr(&c.Network.NodeURL, "AIMSIM_NODE_URL")
	setStr(&c.Network.AccountKey, "AIMSIM_ACCOUNT_KEY")
	setStr(&c.LogLevel, "AIMSIM_LOG_LEVEL")
	if err := setInt(&c.Server.Port, "AIMSIM_PORT"); err != nil {
		return err
	}
	return setBool(&c.Seed.Enabled, "AIMSIM_SEED")
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

func setStr(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", key, err)
	}
	*dst = b
	return nil
}
