package application

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/config"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		conf := &config.Config{Storage: config.Storage{Driver: config.StorageMemory}}

		store, err := OpenStorage(ctx, conf)

		require.NoError(t, err)
		require.NoError(t, store.Close())
	})

	t.Run("SQLite", func(t *testing.T) {
		conf := &config.Config{Storage: config.Storage{
			Driver:     config.StorageSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "tally.db"),
		}}

		store, err := OpenStorage(ctx, conf)
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = store.Close()
		})

		require.NoError(t, store.Set(ctx, repository.KeyTies, 1))
		value, err := store.Get(ctx, repository.KeyTies)
		require.NoError(t, err)
		assert.Equal(t, 1, value)
	})

	t.Run("Unknown driver", func(t *testing.T) {
		conf := &config.Config{Storage: config.Storage{Driver: "etcd"}}

		_, err := OpenStorage(ctx, conf)

		require.ErrorIs(t, err, apperror.ErrUnknownStorage)
	})
}

func TestNewMatchFactory(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	conf := &config.Config{
		Storage: config.Storage{Driver: config.StorageMemory, KeyPrefix: "session:"},
		Match:   config.Match{TotalGames: 3},
	}

	store, err := OpenStorage(ctx, conf)
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "session:abc:"+repository.KeyGamesPlayed, 3))
	require.NoError(t, store.Set(ctx, "session:abc:"+repository.KeyComputerWins, 3))

	newMatch := NewMatchFactory(logger, conf, store)

	t.Run("Restores the session's tally", func(t *testing.T) {
		match, err := newMatch(ctx, "abc")
		require.NoError(t, err)

		state := match.State()
		assert.Equal(t, entity.Tally{GamesPlayed: 3, ComputerWins: 3}, state.Tally)
		assert.Equal(t, 3, state.TotalGames)
		assert.False(t, state.MatchActive)
	})

	t.Run("Other sessions start from zero", func(t *testing.T) {
		match, err := newMatch(ctx, "def")
		require.NoError(t, err)

		state := match.State()
		assert.True(t, state.Tally.IsZero())
		assert.True(t, state.MatchActive)
	})
}
