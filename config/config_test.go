package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, StorageMongo, cfg.Storage.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "notes-manager", cfg.Mongo.Database)
	assert.Equal(t, 168*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, uint(5), cfg.Mongo.ConnectAttempts)
	assert.Equal(t, 10, cfg.RateLimit.Capacity)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_IN", "1h")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	t.Setenv("ADMIN_PASSWORD", "hunter22")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "root@example.com", cfg.Admin.Email)
	assert.Equal(t, "Administrator", cfg.Admin.Name)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestParse_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Storage: StorageConfig{Driver: StorageMongo},
		JWT:     JWTConfig{Secret: "x", ExpiresIn: time.Hour},
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }, true},
		{"no secret", func(c *Config) { c.JWT.Secret = "" }, true},
		{"zero ttl", func(c *Config) { c.JWT.ExpiresIn = 0 }, true},
		{"admin email without password", func(c *Config) { c.Admin.Email = "a@b.c" }, true},
		{"admin pair", func(c *Config) { c.Admin.Email = "a@b.c"; c.Admin.Password = "pw" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_MigrationConfig(t *testing.T) {
	t.Setenv("FIX_ROLES_ADMIN_EMAIL", "boss@example.com")

	cfg, err := Load[MigrationConfig]()
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", cfg.AdminEmail)
	assert.Equal(t, "notes-manager", cfg.Mongo.Database)
}
