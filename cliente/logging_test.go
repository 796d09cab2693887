package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_DisabledWithoutPath(t *testing.T) {
	log, err := setupLogging("", true)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1), "nop logger should drop everything")
}

func TestSetupLogging_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cliente.log")
	log, err := setupLogging(path, false)
	require.NoError(t, err)

	log.Info("test log message")
	log.Debug("hidden without -debug")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "test log message")
	assert.NotContains(t, string(b), "hidden without -debug")
}

func TestSetupLogging_Debug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliente.log")
	log, err := setupLogging(path, true)
	require.NoError(t, err)

	log.Debug("poll detail")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "poll detail")
}
