package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/errors"

	"github.com/slighter12/go-lib/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  serviceName: fullapp
  log:
    level: debug
http:
  port: 9090
jwt:
  key: ""
  ttl: 15m
auth:
  bcryptCost: 4
seed:
  enabled: true
`

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testYAML), 0o600))
	t.Chdir(dir)
	t.Setenv("JWT_KEY", "from-env-secret")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "from-env-secret", cfg.JWT.Key)
	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config.yaml not found")
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultJWTIssuer, cfg.JWT.Issuer)
	assert.Equal(t, defaultJWTAudience, cfg.JWT.Audience)
	assert.Equal(t, defaultJWTTTL, cfg.JWT.TTL)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	require.NotNil(t, cfg.Seed)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, "admin@example.com", cfg.Seed.AdminEmail)
	assert.Equal(t, "Admin123!", cfg.Seed.AdminPassword)
	assert.Nil(t, cfg.PubSub)
}

func TestConfig_ApplyDefaultsPublishTimeout(t *testing.T) {
	cfg := &Config{PubSub: &PubSubConfig{Provider: "local"}}
	cfg.applyDefaults()
	assert.Equal(t, defaultPublishTimeout, cfg.PubSub.PublishTimeout)

	cfg = &Config{PubSub: &PubSubConfig{PublishTimeout: time.Second}}
	cfg.applyDefaults()
	assert.Equal(t, time.Second, cfg.PubSub.PublishTimeout)
}

func TestConfig_ApplyDefaultsKeepsExplicitSeedSwitch(t *testing.T) {
	cfg := &Config{Seed: &SeedConfig{Enabled: false}}
	cfg.applyDefaults()

	assert.False(t, cfg.Seed.Enabled)
	assert.Equal(t, defaultSeedAdminEmail, cfg.Seed.AdminEmail)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("missing postgres", func(t *testing.T) {
		cfg := &Config{}
		cfg.JWT.Key = "secret"

		err := cfg.Validate()
		assert.True(t, errors.Is(err, domainerrors.ErrConfiguration))
		assert.Contains(t, err.Error(), "postgres")
	})

	t.Run("blank jwt key", func(t *testing.T) {
		cfg := &Config{Postgres: &postgres.DBConn{}}
		cfg.JWT.Key = "   "

		err := cfg.Validate()
		assert.True(t, errors.Is(err, domainerrors.ErrConfiguration))
		assert.Contains(t, err.Error(), "JWT_KEY")
	})

	t.Run("complete", func(t *testing.T) {
		cfg := &Config{Postgres: &postgres.DBConn{}}
		cfg.JWT.Key = "secret"

		assert.NoError(t, cfg.Validate())
	})
}
