package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hokago/nichian/internal/logger"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string
	Env  string
}

// DBConfig selects the gorm dialector and its DSN
type DBConfig struct {
	Driver string // sqlite | postgres
	DSN    string
}

// SessionConfig holds the session token settings
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// GeminiConfig holds the generative model settings
type GeminiConfig struct {
	APIKey      string
	Model       string
	LegacyModel string
}

type Config struct {
	Server           ServerConfig
	DB               DBConfig
	Session          SessionConfig
	Gemini           GeminiConfig
	LogLevel         string
	MetricsNamespace string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr: getEnv("ADDR", ":8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		DB: DBConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			DSN:    getEnv("DB_DSN", "nichian.db"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			TTL:    getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
			LegacyModel: getEnv("GEMINI_LEGACY_MODEL", "gemini-1.5-flash"),
		},
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "nichian"),
	}

	switch cfg.DB.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	if cfg.Session.Secret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("SESSION_SECRET must be set in production")
		}
		cfg.Session.Secret = "dev-session-secret"
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// LogFields returns the non-secret part of the config for the startup log.
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("addr", c.Server.Addr),
		zap.String("environment", c.Server.Env),
		zap.String("db_driver", c.DB.Driver),
		logger.Redact("db_dsn", c.DB.DSN),
		zap.String("gemini_model", c.Gemini.Model),
		zap.String("gemini_legacy_model", c.Gemini.LegacyModel),
		zap.Bool("gemini_key_set", c.Gemini.APIKey != ""),
		zap.Duration("session_ttl", c.Session.TTL),
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return def
}
