package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageType)
	assert.Equal(t, 30*time.Second, cfg.ReapInterval)
	assert.Equal(t, 180*time.Second, cfg.IdleTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PARTYROOM_PORT", "9090")
	t.Setenv("PARTYROOM_STORAGE_TYPE", "redis")
	t.Setenv("PARTYROOM_IDLE_TIMEOUT", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StorageRedis, cfg.StorageType)
	assert.Equal(t, 5*time.Minute, cfg.IdleTimeout)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:         8080,
		StorageType:  StorageMemory,
		ReapInterval: 30 * time.Second,
		IdleTimeout:  3 * time.Minute,
	}
	require.NoError(t, valid.Validate())

	badPort := valid
	badPort.Port = 0
	assert.Error(t, badPort.Validate())

	badStorage := valid
	badStorage.StorageType = "postgres"
	assert.Error(t, badStorage.Validate())

	badReap := valid
	badReap.ReapInterval = 0
	assert.Error(t, badReap.Validate())

	badIdle := valid
	badIdle.IdleTimeout = -time.Second
	assert.Error(t, badIdle.Validate())
}
