package config

import (
	"fmt"

	pkgconfig "github.com/Skotchmaster/storefront/pkg/config"
)

const DefaultServiceName = "auth"

type Config struct {
	pkgconfig.Config
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// Load reads the environment and aborts the process on missing required values.
func Load() *Config {
	cfg := &Config{Config: pkgconfig.Load()}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	pkgconfig.MustOneOf(cfg.DatabaseDriver, "DATABASE_DRIVER", pkgconfig.DriverPostgres, pkgconfig.DriverSQLite)
	pkgconfig.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	pkgconfig.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	return cfg
}

// LoadDatabase is Load for commands that never sign tokens.
func LoadDatabase() *Config {
	cfg := &Config{Config: pkgconfig.Load()}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	pkgconfig.MustOneOf(cfg.DatabaseDriver, "DATABASE_DRIVER", pkgconfig.DriverPostgres, pkgconfig.DriverSQLite)
	pkgconfig.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	return cfg
}
