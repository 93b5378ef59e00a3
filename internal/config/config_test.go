package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                "development",
		Port:               "8080",
		TokenSecret:        "secure-secret-at-least-32-chars-long",
		DBPassword:         "secure-password",
		DBSSLMode:          "require",
		TracingSampleRatio: 1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Valid development", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing token secret", func(c *Config) { c.TokenSecret = "" }, true},
		{"Negative pool size", func(c *Config) { c.DBMaxOpenConns = -1 }, true},
		{"Sample ratio out of range", func(c *Config) { c.TracingSampleRatio = 1.5 }, true},
		{"Production with default secret", func(c *Config) {
			c.Env = "production"
			c.TokenSecret = defaultTokenSecret
		}, true},
		{"Production with short secret", func(c *Config) {
			c.Env = "prod"
			c.TokenSecret = "short"
		}, true},
		{"Production with SSL disabled", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "disable"
		}, true},
		{"Production with DATABASE_URL", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = ""
			c.DBPassword = ""
			c.DatabaseURL = "postgres://scribe:secret@db:5432/scribe?sslmode=require"
		}, false},
		{"Production with strong settings", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_TokenTTL(t *testing.T) {
	c := &Config{}
	assert.Equal(t, 24*time.Hour, c.TokenTTL())

	c.TokenTTLHours = 2
	assert.Equal(t, 2*time.Hour, c.TokenTTL())
}

func TestConfig_ImageHostingConfigured(t *testing.T) {
	c := &Config{CloudName: "demo", CloudKey: "key"}
	assert.False(t, c.ImageHostingConfigured())

	c.CloudSecret = "secret"
	assert.True(t, c.ImageHostingConfigured())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9999")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")
	t.Setenv("TOKEN_SECRET", "test-secret-key-12345678901234567890")
	t.Setenv("TOKEN_TTL_HOURS", "48")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9999", c.Port)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, 48*time.Hour, c.TokenTTL())
	assert.Equal(t, 25, c.DBMaxOpenConns)
	assert.NotEmpty(t, c.DefaultIconURL)
}
