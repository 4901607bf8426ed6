package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingpong/internal/game"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(FileEnv, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, game.BestOf3, cfg.MatchLength())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(FileEnv, "")
	t.Setenv("PINGPONG_BEST_OF", "7")
	t.Setenv("PINGPONG_SEED", "1234")
	t.Setenv("PINGPONG_AUDIO", "false")
	t.Setenv("PINGPONG_VOLUME", "0.25")
	t.Setenv("PINGPONG_SPECTATE_ADDR", ":9090")
	t.Setenv("PINGPONG_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, game.BestOf7, cfg.MatchLength())
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.False(t, cfg.AudioEnabled)
	assert.Equal(t, 0.25, cfg.Volume)
	assert.Equal(t, ":9090", cfg.SpectateAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "assets", cfg.AssetsDir, "unset keys keep defaults")
}

func TestLoadFromFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pingpong.env")
	require.NoError(t, os.WriteFile(path, []byte("PINGPONG_BEST_OF=5\nPINGPONG_ASSETS_DIR=/opt/pong\n"), 0o600))
	t.Setenv(FileEnv, path)
	t.Setenv("PINGPONG_ASSETS_DIR", "/srv/pong")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, game.BestOf5, cfg.MatchLength())
	assert.Equal(t, "/srv/pong", cfg.AssetsDir, "environment wins over file")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(FileEnv, filepath.Join(t.TempDir(), "nope.env"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"best of 4", func(c *Config) { c.BestOf = 4 }},
		{"best of 0", func(c *Config) { c.BestOf = 0 }},
		{"volume too loud", func(c *Config) { c.Volume = 1.5 }},
		{"negative volume", func(c *Config) { c.Volume = -0.1 }},
		{"zero tps", func(c *Config) { c.TPS = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrInvalidConfig))
		})
	}

	assert.NoError(t, Default().Validate())
}
