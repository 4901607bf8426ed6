package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingpong/internal/audio"
	"pingpong/internal/config"
	"pingpong/internal/game"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"tui", "watch"}, names)

	root.SetArgs([]string{"extra"})
	assert.Error(t, root.Execute())
}

func TestSessionRejectsBadConfig(t *testing.T) {
	t.Setenv(config.FileEnv, "")
	t.Setenv("PINGPONG_BEST_OF", "4")

	_, err := newSession(true)
	assert.True(t, eris.Is(err, config.ErrInvalidConfig))
}

func TestSessionWiring(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "pingpong.log")
	t.Setenv(config.FileEnv, "")
	t.Setenv("PINGPONG_AUDIO", "false")
	t.Setenv("PINGPONG_BEST_OF", "5")
	t.Setenv("PINGPONG_SEED", "7")
	t.Setenv("PINGPONG_LOG_FILE", logFile)

	s, err := newSession(true)
	require.NoError(t, err)
	assert.Equal(t, audio.Silent{}, s.player)

	engine, err := s.newEngine()
	require.NoError(t, err)
	assert.Equal(t, game.BestOf5, engine.Match().BestOf)

	hub, err := s.startFeed()
	require.NoError(t, err)
	assert.Nil(t, hub, "no address means no feed")

	s.Close()
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "match started")
}

func TestSessionStartsFeed(t *testing.T) {
	t.Setenv(config.FileEnv, "")
	t.Setenv("PINGPONG_AUDIO", "false")
	t.Setenv("PINGPONG_SPECTATE_ADDR", "127.0.0.1:0")

	s, err := newSession(true)
	require.NoError(t, err)
	defer s.Close()

	hub, err := s.startFeed()
	require.NoError(t, err)
	require.NotNil(t, hub)
	assert.Equal(t, 0, hub.Count())
}
