package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Errorf("driver: want sqlite, got %q", cfg.DB.Driver)
	}
	if cfg.Session.TTL != 7*24*time.Hour {
		t.Errorf("ttl: want 168h, got %s", cfg.Session.TTL)
	}
	if cfg.Session.Secret == "" {
		t.Error("development config should fall back to a dev secret")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when SESSION_SECRET is missing in production")
	}
}
