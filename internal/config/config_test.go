package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Given: an empty config file
		path := writeConfig(t, "{}\n")

		// When: the config is loaded
		conf, err := Load(path)

		// Then: every field has its default
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, StorageMemory, conf.Storage.Driver)
		assert.Equal(t, "session:", conf.Storage.KeyPrefix)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 5, conf.Match.TotalGames)
		assert.Equal(t, 500*time.Millisecond, conf.Match.ComputerDelay)
		assert.Equal(t, 2*time.Second, conf.Match.ResetDelay)
	})

	t.Run("Values from file", func(t *testing.T) {
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
storage:
  driver: sqlite
  sqlite-path: /tmp/tally.db
redis:
  host: redis
  port: "6380"
match:
  total-games: 3
  computer-delay: 10ms
  reset-delay: 1s
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, StorageSQLite, conf.Storage.Driver)
		assert.Equal(t, "/tmp/tally.db", conf.Storage.SQLitePath)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 3, conf.Match.TotalGames)
		assert.Equal(t, 10*time.Millisecond, conf.Match.ComputerDelay)
		assert.Equal(t, time.Second, conf.Match.ResetDelay)
	})

	t.Run("Environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  driver: sqlite\n")
		t.Setenv("STORAGE_DRIVER", "redis")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, StorageRedis, conf.Storage.Driver)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

		require.Error(t, err)
	})

	t.Run("MustLoad panics on missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "nope.yml"))
		})
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("MATCH_TOTAL_GAMES", "7")

	conf, err := LoadEnv()

	require.NoError(t, err)
	assert.Equal(t, 7, conf.Match.TotalGames)
	assert.Equal(t, "info", conf.LogLevel)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("verbose"))
}
