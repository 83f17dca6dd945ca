package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_EarlierLayersWin(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Server: Server{HTTPAddress: "env:8080"}},
		&StructuredConfig{Server: Server{HTTPAddress: "flag:9090"}, App: App{TokenIssuer: "civicwatch"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "env:8080", cfg.Server.HTTPAddress)
	// gaps are filled from later layers
	assert.Equal(t, "civicwatch", cfg.App.TokenIssuer)
}

func TestBuilder_ValidationRejectsRedisWithoutDSN(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Storage: Storage{Remote: Remote{RedisAddr: "localhost:6379"}},
	})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestBuilder_ValidationRejectsNegativePollInterval(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Storage: Storage{Local: Local{PollInterval: -time.Second}},
	})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestBuilder_DefaultsFillOnlyGaps(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Server: Server{HTTPAddress: "0.0.0.0:9999"},
	})

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, "civicwatch.db", cfg.Storage.Local.Path)
	assert.Equal(t, 2*time.Second, cfg.Storage.Local.PollInterval)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
}

func TestBuilder_EmptyConfigIsValid(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.False(t, cfg.Storage.RemoteEnabled())
}
