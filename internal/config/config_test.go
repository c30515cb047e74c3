package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		App:   AppConfig{Env: "local", Port: 8080},
		DB:    DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "bookly", SSLMode: ""},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{JWTSecret: "secret"},
	}
}

func TestLoad_ReportsMissingRequired(t *testing.T) {
	// Ensure a clean env by not setting anything and calling validation directly.
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_AppliesTokenDefaults(t *testing.T) {
	c := validConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.Auth.AccessTokenTTL != 60*time.Minute {
		t.Fatalf("expected 60m access default, got %v", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL != 48*time.Hour {
		t.Fatalf("expected 48h refresh default, got %v", c.Auth.RefreshTokenTTL)
	}
	if c.Auth.RevocationTTL != 48*time.Hour {
		t.Fatalf("expected revocation TTL to default to the longest token TTL, got %v", c.Auth.RevocationTTL)
	}
	if c.Auth.LinkTokenMaxAge != 10*time.Minute {
		t.Fatalf("expected 10m link max age default, got %v", c.Auth.LinkTokenMaxAge)
	}
}

func TestValidate_RejectsShortRevocationTTL(t *testing.T) {
	// A revoked token must never outlive its blocklist entry.
	c := validConfig()
	c.Auth.AccessTokenTTL = time.Hour
	c.Auth.RefreshTokenTTL = 48 * time.Hour
	c.Auth.RevocationTTL = time.Hour
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for revocation TTL below refresh TTL")
	}
}

func TestValidate_RejectsRefreshTTLBelowAccessTTL(t *testing.T) {
	c := validConfig()
	c.Auth.AccessTokenTTL = 2 * time.Hour
	c.Auth.RefreshTokenTTL = time.Hour
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for refresh TTL below access TTL")
	}
}

func TestValidate_RequiresJWTSecret(t *testing.T) {
	c := validConfig()
	c.Auth.JWTSecret = ""
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for missing JWT secret")
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := validConfig()
	c.App.Env = "production"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_LocalDefaultsSSLMode(t *testing.T) {
	c := validConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DB.SSLMode != "disable" {
		t.Fatalf("expected sslmode disable default, got %q", c.DB.SSLMode)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "x")
	t.Setenv("DB_NAME", "bookly")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_ACCESS_TTL", "30m")
	t.Setenv("JWT_REFRESH_TTL", "24h")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Auth.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("unexpected access TTL: %v", c.Auth.AccessTokenTTL)
	}
	if c.RedisAddr() != "localhost:6379" {
		t.Fatalf("unexpected redis addr: %q", c.RedisAddr())
	}
	if c.HTTPAddr() != ":8080" {
		t.Fatalf("unexpected http addr: %q", c.HTTPAddr())
	}
}
