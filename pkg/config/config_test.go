package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Shop.NotificationTTL != 3*time.Second {
		t.Fatalf("expected notification TTL 3s, got %v", cfg.Shop.NotificationTTL)
	}
	if cfg.Shop.CouponMinimumTotal != 10000 {
		t.Fatalf("expected coupon minimum 10000, got %d", cfg.Shop.CouponMinimumTotal)
	}
	if cfg.Shop.SearchDebounce != 500*time.Millisecond {
		t.Fatalf("expected search debounce 500ms, got %v", cfg.Shop.SearchDebounce)
	}
	if cfg.Persistence.Driver != PersistenceDriverSQLite {
		t.Fatalf("expected sqlite persistence default, got %q", cfg.Persistence.Driver)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsUnknownPersistenceDriver(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvPersistence, "dynamo")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown persistence driver to be rejected")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvDBPath, "storefront-test.db")
	t.Setenv(EnvJWTSecret, "secret")
	t.Setenv(EnvJWTIssuer, "storefront")
	t.Setenv(EnvJWTExpMins, "60")
	t.Setenv(EnvAdminKey, "admin-key")
}
