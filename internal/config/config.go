package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Fetch struct {
		Timeout time.Duration
	}
	SessionLifetime time.Duration
	InsecureCookies bool
}

// Load reads config from environment (PROMPTGEN_ prefix) and optional
// prompt-gen.yaml in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PROMPTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("prompt-gen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "prompt-gen.db")
	v.SetDefault("fetch.timeout", "10s")
	v.SetDefault("session.lifetime", "720h")
	v.SetDefault("insecure_cookies", false)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.InsecureCookies = v.GetBool("insecure_cookies")

	timeout, err := time.ParseDuration(v.GetString("fetch.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROMPTGEN_FETCH_TIMEOUT: %w", err)
	}
	cfg.Fetch.Timeout = timeout

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROMPTGEN_SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	switch cfg.DB.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported PROMPTGEN_DB_DRIVER %q: must be sqlite3, mysql, or postgres", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("PROMPTGEN_DB_DSN is required")
	}

	return cfg, nil
}
