package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lanerush/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".json"), []byte(body), 0o644))
	return dir
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.True(t, cfg.Window.VSync)
	assert.Equal(t, "space", cfg.Keys.Restart)
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, game.DefaultParams(), cfg.Params())
	assert.Equal(t, game.DefaultBindings(), cfg.Bindings())
}

func TestLoadFileOverrides(t *testing.T) {
	dir := writeConfig(t, `{
		"logLevel": "debug",
		"seed": 1234,
		"window": {"width": 800, "height": 600},
		"keys": {"forward": "up", "backward": "down", "left": "left", "right": "right"},
		"sim": {"spawnInterval": "1500ms", "initialBurst": 2, "driftProbability": 0},
		"storage": {"path": ""}
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "Lane Rush", cfg.Window.Title, "untouched keys keep defaults")
	assert.Equal(t, "", cfg.Storage.Path)

	p := cfg.Params()
	assert.Equal(t, 1500*time.Millisecond, p.SpawnInterval)
	assert.Equal(t, 2, p.InitialBurst)
	assert.Equal(t, 0.0, p.DriftProbability)
	assert.Equal(t, game.DefaultParams().MoveSpeed, p.MoveSpeed)

	b := cfg.Bindings()
	assert.Equal(t, game.ControlForward, b["up"])
	assert.Equal(t, game.ControlRight, b["right"])
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LANERUSH_LOGLEVEL", "warn")
	t.Setenv("LANERUSH_SIM_MOVESPEED", "1.25")
	t.Setenv("LANERUSH_AUDIO_ENABLED", "false")
	t.Setenv("LANERUSH_SIM_COUNTDOWN", "5")
	t.Setenv("LANERUSH_SIM_COUNTDOWNSTEP", "500ms")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 1.25, cfg.Params().MoveSpeed)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 5, cfg.Params().Countdown)
	assert.Equal(t, 500*time.Millisecond, cfg.Params().CountdownStep)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := writeConfig(t, `{"logLevel": `)
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{name: "bad level", body: `{"logLevel": "loud"}`, errMsg: "unknown log level"},
		{name: "zero window", body: `{"window": {"width": 0}}`, errMsg: "window size"},
		{name: "volume", body: `{"audio": {"sfxVolume": 2}}`, errMsg: "audio.sfxVolume"},
		{name: "duplicate key", body: `{"keys": {"restart": "w"}}`, errMsg: "both use"},
		{name: "empty key", body: `{"keys": {"left": ""}}`, errMsg: "keys.left is empty"},
		{name: "sim", body: `{"sim": {"lateralMin": 10}}`, errMsg: "lateral bounds inverted"},
		{name: "cull margin", body: `{"sim": {"cullMargin": -9}}`, errMsg: "cull margin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
