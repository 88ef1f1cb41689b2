package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("DELETE_CASCADE", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("REDIRECT_BASE_URL", "")
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://localhost:9090", cfg.BaseURL)
	assert.Equal(t, "http://localhost:9090/redirect", cfg.RedirectBaseURL)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, CascadeNone, cfg.DeleteCascade)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_TrimsBaseURL(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("DELETE_CASCADE", "")
	t.Setenv("BASE_URL", "https://qr.example.com/")
	t.Setenv("REDIRECT_BASE_URL", "")
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://qr.example.com", cfg.BaseURL)
	assert.Equal(t, "https://qr.example.com/redirect", cfg.RedirectBaseURL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:                   "8080",
			Environment:            "production",
			RedirectBaseURL:        "https://qr.example.com/redirect",
			StorageBackend:         BackendMemory,
			DeleteCascade:          CascadeAll,
			RateLimitRPS:           1,
			RateLimitBurst:         1,
			RateLimitRedirectRPS:   1,
			RateLimitRedirectBurst: 1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Port = "abc" }, true},
		{"port out of range", func(c *Config) { c.Port = "70000" }, true},
		{"bad environment", func(c *Config) { c.Environment = "staging" }, true},
		{"unknown backend", func(c *Config) { c.StorageBackend = "mongo" }, true},
		{"postgres without dsn", func(c *Config) { c.StorageBackend = BackendPostgres }, true},
		{"postgres with dsn", func(c *Config) {
			c.StorageBackend = BackendPostgres
			c.DatabaseURL = "postgres://localhost/qr"
		}, false},
		{"sqlite without path", func(c *Config) { c.StorageBackend = BackendSQLite }, true},
		{"bad cascade", func(c *Config) { c.DeleteCascade = "sometimes" }, true},
		{"zero rate", func(c *Config) { c.RateLimitRPS = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
