// Package config holds the reusable configuration sections shared by the
// application config. Every section validates itself so the loader can
// fail fast on a broken deployment.
package config

import (
	"fmt"
	"strings"
	"time"
)

type HTTPConfig struct {
	Port           int `koanf:"port"`
	MaxHeaderBytes int `koanf:"maxHeaderBytes"`
	Timeout        struct {
		Read       time.Duration `koanf:"read"`
		Write      time.Duration `koanf:"write"`
		Idle       time.Duration `koanf:"idle"`
		ReadHeader time.Duration `koanf:"readHeader"`
	} `koanf:"timeout"`
}

func (c *HTTPConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid HTTP server port: %d", c.Port)
	}
	if c.Timeout.Read <= 0 {
		return fmt.Errorf("invalid HTTP server read timeout: %v", c.Timeout.Read)
	}
	if c.Timeout.Write <= 0 {
		return fmt.Errorf("invalid HTTP server write timeout: %v", c.Timeout.Write)
	}
	if c.Timeout.Idle <= 0 {
		return fmt.Errorf("invalid HTTP server idle timeout: %v", c.Timeout.Idle)
	}
	if c.Timeout.ReadHeader <= 0 {
		return fmt.Errorf("invalid HTTP server read header timeout: %v", c.Timeout.ReadHeader)
	}
	return nil
}

type DatabaseConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

func (c *DatabaseConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("database URL is not configured")
	}
	if !strings.HasPrefix(c.URL, "postgres://") && !strings.HasPrefix(c.URL, "postgresql://") {
		return fmt.Errorf("database URL must start with 'postgres://': %s", c.URL)
	}
	return nil
}

// MaskedURL returns the database URL with credentials replaced, safe for logs.
func (c *DatabaseConfig) MaskedURL() string {
	if c.URL == "" {
		return "<not configured>"
	}
	parts := strings.Split(c.URL, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return "****"
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func (c *LogConfig) Validate() error {
	return nil
}

type PProfConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

func (c *PProfConfig) Validate() error {
	if c.Enabled && c.Addr == "" {
		return fmt.Errorf("pprof is enabled but address is not configured")
	}
	return nil
}

type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("shutdown timeout is not configured")
	}
	return nil
}

type NATSConfig struct {
	Url     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

func (c *NATSConfig) Validate() error {
	if c.Url == "" {
		return fmt.Errorf("NATS URL is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("nats dial timeout is not configured")
	}
	return nil
}

// IdP describes the identity provider used to verify request tokens.
type IdP struct {
	JwksURL     string        `koanf:"jwksurl"`
	Issuer      string        `koanf:"issuer"`
	ClientID    string        `koanf:"clientid"`
	MinInterval time.Duration `koanf:"mininterval"`
}

func (c *IdP) Validate() error {
	if c.JwksURL == "" {
		return fmt.Errorf("IdP JWKS URL cannot be empty")
	}
	if c.Issuer == "" {
		return fmt.Errorf("IdP issuer cannot be empty")
	}
	if c.ClientID == "" {
		return fmt.Errorf("IdP client ID cannot be empty")
	}
	if c.MinInterval <= 0 {
		return fmt.Errorf("IdP minimum interval must be greater than zero")
	}
	return nil
}
