package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository/storage"
)

// Names of the persisted counters. Nothing else is stored.
const (
	KeyGamesPlayed  = "gamesPlayed"
	KeyPlayerWins   = "playerWins"
	KeyComputerWins = "computerWins"
	KeyTies         = "ties"
)

type TallyRepository interface {
	Load(ctx context.Context) (entity.Tally, error)
	Save(ctx context.Context, tally entity.Tally) error
	Clear(ctx context.Context) error
}

type keyValueStore interface {
	Get(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key string, value int) error
	Delete(ctx context.Context, keys ...string) error
}

type dbTally struct {
	store     keyValueStore
	namespace string
}

// NewTallyRepository - counters are stored as namespace+name, an empty namespace keeps the bare names.
func NewTallyRepository(store keyValueStore, namespace string) TallyRepository {
	return &dbTally{
		store:     store,
		namespace: namespace,
	}
}

func (that *dbTally) Load(ctx context.Context) (entity.Tally, error) {
	var tally entity.Tally

	for key, counter := range that.counters(&tally) {
		value, err := that.store.Get(ctx, key)
		if errors.Is(err, storage.ErrKeyNotFound) {
			continue
		}

		if err != nil {
			return entity.Tally{}, fmt.Errorf("failed to load tally: %w", err)
		}

		*counter = value
	}

	return tally, nil
}

func (that *dbTally) Save(ctx context.Context, tally entity.Tally) error {
	for key, counter := range that.counters(&tally) {
		if err := that.store.Set(ctx, key, *counter); err != nil {
			return fmt.Errorf("failed to save tally: %w", err)
		}
	}

	return nil
}

func (that *dbTally) Clear(ctx context.Context) error {
	keys := make([]string, 0, 4)
	for key := range that.counters(&entity.Tally{}) {
		keys = append(keys, key)
	}

	if err := that.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to clear tally: %w", err)
	}

	return nil
}

func (that *dbTally) counters(tally *entity.Tally) map[string]*int {
	return map[string]*int{
		that.namespace + KeyGamesPlayed:  &tally.GamesPlayed,
		that.namespace + KeyPlayerWins:   &tally.PlayerWins,
		that.namespace + KeyComputerWins: &tally.ComputerWins,
		that.namespace + KeyTies:         &tally.Ties,
	}
}
