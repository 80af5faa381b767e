package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dkeye/disagree/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, env, body string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config."+env+".yaml"), []byte(body), 0o644))
	t.Chdir(dir)
	t.Setenv("CONFIG_ENV", env)
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_ENV", "missing")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, 60*time.Second, cfg.PongWait)
	assert.Equal(t, time.Duration(0), cfg.FormingTTL)
	assert.Equal(t, []string{"stun:stun.l.google.com:19302"}, cfg.ICEURLs)
}

func TestLoad_FileAndEnv(t *testing.T) {
	writeConfig(t, "test", `
mode: debug
port: 9000
forming_ttl: 10m
ice_urls:
  - stun:stun.example.org:3478
  - turn:turn.example.org:3478
`)
	t.Setenv("DISAGREE_PORT", "9100")
	t.Setenv("DISAGREE_ICE_USERNAME", "alice")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.FormingTTL)
	assert.Equal(t, "alice", cfg.ICEUsername)
	assert.Len(t, cfg.ICEURLs, 2)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DISAGREE_SEND_BUFFER=64\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("CONFIG_ENV", "missing")
	t.Cleanup(func() { os.Unsetenv("DISAGREE_SEND_BUFFER") })

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.SendBuffer)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad mode", body: "mode: loud\n"},
		{name: "port out of range", body: "port: 70000\n"},
		{name: "ping not below pong", body: "ping_period: 90s\npong_wait: 60s\n"},
		{name: "empty buffer", body: "send_buffer: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, "bad", tt.body)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
