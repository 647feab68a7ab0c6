package config

import (
	"testing"
	"time"
)

func TestEnvKey(t *testing.T) {
	cases := map[string]string{
		"JWT_SECRET":            "jwt.secret",
		"OSS_ACCESS_KEY":        "oss.access_key",
		"APP_CLIENT_KEY":        "app.client_key",
		"RATE_LOGIN_PER_MINUTE": "rate.login_per_minute",
		"PATH":                  "",
		"HOME_DIR":              "",
		"JWT":                   "",
	}
	for in, want := range cases {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_CLIENT_KEY", "client")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("REDIS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Errorf("port = %q", cfg.App.Port)
	}
	if cfg.JWT.TTL != 2*time.Hour {
		t.Errorf("ttl = %v", cfg.JWT.TTL)
	}
	if cfg.DB.Driver != "postgres" {
		t.Errorf("driver = %q", cfg.DB.Driver)
	}
	if cfg.Redis.Enabled {
		t.Error("redis should be disabled")
	}
	if cfg.AMQP.URL == "" {
		t.Error("amqp url default should survive")
	}
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty secret must be rejected")
	}
	cfg.JWT.Secret = "x"
	cfg.App.ClientKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.DB.Driver = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown driver must be rejected")
	}
}

func TestOSSEnabled(t *testing.T) {
	cfg := defaultConfig()
	if cfg.OSSEnabled() {
		t.Fatal("oss should be disabled by default")
	}
	cfg.OSS = OSSConfig{Endpoint: "e", AccessKey: "a", SecretKey: "s", Bucket: "b"}
	if !cfg.OSSEnabled() {
		t.Fatal("oss should be enabled")
	}
}
