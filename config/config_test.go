package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_EmptyValues(t *testing.T) {
	for _, key := range []string{"STATE_STORE_DRIVER", "STATE_STORE_KEY", "GEMINI_API_KEY", "API_KEY", "GEMINI_TEMPERATURE", "INSIGHT_RATE_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	// An empty string counts as set; only unparsable numbers fall back.
	if cfg.Store.Key != "" {
		t.Errorf("expected explicitly empty key, got %q", cfg.Store.Key)
	}
	if cfg.AI.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7 for unparsable value, got %v", cfg.AI.Temperature)
	}
	if cfg.AI.RateLimit != 5 {
		t.Errorf("expected rate limit 5 for unparsable value, got %d", cfg.AI.RateLimit)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STATE_STORE_DRIVER", "Redis")
	t.Setenv("STATE_STORE_KEY", "custom")
	t.Setenv("GEMINI_TEMPERATURE", "0.2")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("REPORT_RECIPIENT", "me@example.com")

	cfg := Load()

	if cfg.Store.Driver != DriverRedis {
		t.Errorf("expected driver %s, got %s", DriverRedis, cfg.Store.Driver)
	}
	if cfg.Store.Key != "custom" {
		t.Errorf("expected key custom, got %s", cfg.Store.Key)
	}
	if cfg.AI.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %v", cfg.AI.Temperature)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("expected read timeout 3s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Email.ReportRecipient != "me@example.com" {
		t.Errorf("expected report recipient, got %q", cfg.Email.ReportRecipient)
	}
}

func TestLoad_APIKeyFallback(t *testing.T) {
	t.Run("uses API_KEY when GEMINI_API_KEY is unset", func(t *testing.T) {
		t.Setenv("API_KEY", "fallback")
		unsetEnv(t, "GEMINI_API_KEY")

		if got := Load().AI.APIKey; got != "fallback" {
			t.Errorf("expected fallback key, got %q", got)
		}
	})

	t.Run("prefers GEMINI_API_KEY", func(t *testing.T) {
		t.Setenv("API_KEY", "fallback")
		t.Setenv("GEMINI_API_KEY", "primary")

		if got := Load().AI.APIKey; got != "primary" {
			t.Errorf("expected primary key, got %q", got)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		driver  string
		wantErr bool
	}{
		{driver: DriverSQLite},
		{driver: DriverPostgres},
		{driver: DriverRedis},
		{driver: DriverMemory},
		{driver: "mongo", wantErr: true},
		{driver: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := &Config{Store: StoreConfig{Driver: tt.driver}}
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
}
