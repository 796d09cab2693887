package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvVariable(t *testing.T) {
	_, err := GetEnvVariable("")
	assert.Error(t, err)

	t.Setenv("GESTURE_TEST_VAR", "")
	_, err = GetEnvVariable("GESTURE_TEST_VAR")
	assert.Error(t, err)

	t.Setenv("GESTURE_TEST_VAR", "x")
	v, err := GetEnvVariable("GESTURE_TEST_VAR")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestClientDefaults(t *testing.T) {
	for _, k := range []string{EnvServerURL, EnvPollInterval, EnvBoardWidth, EnvBoardHeight, EnvPlayerSize, EnvStore, EnvStorePath, EnvLogFile} {
		t.Setenv(k, "")
	}
	c, err := ClientFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultClient(), c)
	assert.Equal(t, 100*time.Millisecond, c.PollInterval)
	assert.NoError(t, c.Validate())
}

func TestClientFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvServerURL, "http://recognizer:8000")
	t.Setenv(EnvPollInterval, "250ms")
	t.Setenv(EnvBoardWidth, "800")
	t.Setenv(EnvStore, "badger")

	c, err := ClientFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://recognizer:8000", c.ServerURL)
	assert.Equal(t, 250*time.Millisecond, c.PollInterval)
	assert.Equal(t, 800, c.BoardWidth)
	assert.Equal(t, "badger", c.Store)
}

func TestClientFromEnvReportsBadValues(t *testing.T) {
	t.Setenv(EnvPollInterval, "soon")
	t.Setenv(EnvBoardHeight, "tall")

	c, err := ClientFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPollInterval)
	assert.Contains(t, err.Error(), EnvBoardHeight)
	assert.Equal(t, DefaultClient().PollInterval, c.PollInterval)
}

func TestClientValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Client)
	}{
		{"no server", func(c *Client) { c.ServerURL = "" }},
		{"zero interval", func(c *Client) { c.PollInterval = 0 }},
		{"zero player", func(c *Client) { c.PlayerSize = 0 }},
		{"narrow board", func(c *Client) { c.BoardWidth = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultClient()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GESTURE_ADDR=:7000\n"), 0o644))
	t.Setenv(EnvAddr, "")
	os.Unsetenv(EnvAddr)

	require.NoError(t, Load(path))
	assert.Equal(t, ":7000", ServerFromEnv().Addr)
}
