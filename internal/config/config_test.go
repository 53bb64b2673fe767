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

	assert.Equal(t, ":8420", cfg.Listen)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, 0.1, cfg.Alpha)
	assert.Equal(t, 3*time.Second, cfg.ReconnectDelay)
	assert.Equal(t, "neutral", cfg.Initial)
	assert.Empty(t, cfg.RemoteURL, "remote channel off by default")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VISAGE_LISTEN", ":9000")
	t.Setenv("VISAGE_REMOTE_URL", "ws://agent.local:9001/face")
	t.Setenv("VISAGE_FPS", "30")
	t.Setenv("VISAGE_ALPHA", "0.2")
	t.Setenv("VISAGE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "ws://agent.local:9001/face", cfg.RemoteURL)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, 0.2, cfg.Alpha)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]Config{
		"zero fps":      {FPS: 0, Alpha: 0.1, ReconnectDelay: time.Second, LogLevel: "info"},
		"huge fps":      {FPS: 1000, Alpha: 0.1, ReconnectDelay: time.Second, LogLevel: "info"},
		"zero alpha":    {FPS: 60, Alpha: 0, ReconnectDelay: time.Second, LogLevel: "info"},
		"alpha over 1":  {FPS: 60, Alpha: 1.5, ReconnectDelay: time.Second, LogLevel: "info"},
		"bad log level": {FPS: 60, Alpha: 0.1, ReconnectDelay: time.Second, LogLevel: "loud"},
		"zero delay":    {FPS: 60, Alpha: 0.1, LogLevel: "info"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.Validate())
		})
	}
}
