package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{
		"POSTOP_API_URL", "POSTOP_POLL_INTERVAL", "POSTOP_COUNTDOWN_INTERVAL",
		"POSTOP_REQUEST_TIMEOUT", "POSTOP_DEV_ADDR", "POSTOP_DEV_SEED",
		"POSTOP_VISIT_MINUTES", "POSTOP_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "http://localhost:5001", cfg.Dashboard.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Dashboard.PollInterval)
	assert.Equal(t, time.Minute, cfg.Dashboard.CountdownInterval)
	assert.Equal(t, 10*time.Second, cfg.Dashboard.RequestTimeout)
	assert.Equal(t, ":5001", cfg.DevServer.Addr)
	assert.True(t, cfg.DevServer.Seed)
	assert.Equal(t, 15, cfg.DevServer.VisitMinutes)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("POSTOP_API_URL", "http://ward:9000")
	t.Setenv("POSTOP_POLL_INTERVAL", "2s")
	t.Setenv("POSTOP_COUNTDOWN_INTERVAL", "30")
	t.Setenv("POSTOP_DEV_SEED", "false")
	t.Setenv("POSTOP_VISIT_MINUTES", "20")

	cfg := FromEnv()
	assert.Equal(t, "http://ward:9000", cfg.Dashboard.APIURL)
	assert.Equal(t, 2*time.Second, cfg.Dashboard.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.CountdownInterval)
	assert.False(t, cfg.DevServer.Seed)
	assert.Equal(t, 20, cfg.DevServer.VisitMinutes)
}

func TestFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("POSTOP_POLL_INTERVAL", "soon")
	t.Setenv("POSTOP_VISIT_MINUTES", "many")

	cfg := FromEnv()
	assert.Equal(t, 5*time.Second, cfg.Dashboard.PollInterval)
	assert.Equal(t, 15, cfg.DevServer.VisitMinutes)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("POSTOP_DEV_ADDR=:7777\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	// godotenv does not override variables that are already set.
	os.Unsetenv("POSTOP_DEV_ADDR")
	t.Cleanup(func() { os.Unsetenv("POSTOP_DEV_ADDR") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.DevServer.Addr)
}

func TestLoadWithoutDotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	_, err = Load()
	assert.NoError(t, err)
}
