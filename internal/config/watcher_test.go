package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWatcherReloadNotifiesSubscribers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, path, "log:\n  level: debug\n")

	w := NewWatcher(path)
	defer w.Stop()

	var got []string
	w.Subscribe(func(cfg *Config) {
		got = append(got, cfg.Log.Level)
	})

	writeConfigFile(t, path, "log:\n  level: warn\n")
	w.reload()

	require.Len(t, got, 1)
	assert.Equal(t, "warn", got[0])

	// 停止后不再派发
	w.Stop()
	writeConfigFile(t, path, "log:\n  level: error\n")
	w.reload()
	assert.Len(t, got, 1)
}

func TestWatcherStartMissingFile(t *testing.T) {
	w := NewWatcher("/nonexistent/config.yaml")
	assert.Error(t, w.Start())
}
