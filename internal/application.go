package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/config"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-match/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-match/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-match/transport/rest"
	"github.com/rocketscienceinc/tictactoe-match/transport/websocket"
)

// Store - a key-value backend for the tally counters.
type Store interface {
	Get(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key string, value int) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	store, err := OpenStorage(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not open storage: %w", err)
	}

	defer func() {
		if err = store.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	newMatch := NewMatchFactory(logger, conf, store)
	wsServer := websocket.New(logger, newMatch, conf.Match.ComputerDelay, conf.Match.ResetDelay)
	router := rest.NewRouter(logger, wsServer)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage.Driver)
		if httpErr := rest.Start(ctx, conf.HTTPPort, router); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// OpenStorage - connects the storage driver named in the config.
func OpenStorage(ctx context.Context, conf *config.Config) (Store, error) {
	switch conf.Storage.Driver {
	case config.StorageMemory:
		return storage.NewMemoryStorage(), nil
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}
		return redisStorage, nil
	case config.StorageSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}
		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}
		return sqliteStorage, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStorage, conf.Storage.Driver)
	}
}

// NewMatchFactory - every browser session gets its own engine and its own counters in store.
func NewMatchFactory(logger *slog.Logger, conf *config.Config, store Store) websocket.MatchFactory {
	return func(ctx context.Context, sessionID string) (*usecase.Match, error) {
		tallyRepo := repository.NewTallyRepository(store, conf.Storage.KeyPrefix+sessionID+":")
		engine := tictactoe.NewMatchEngine(tictactoe.WithTotalGames(conf.Match.TotalGames))
		match := usecase.NewMatch(logger.With("session", sessionID), tallyRepo, engine)

		if _, err := match.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to start match: %w", err)
		}

		return match, nil
	}
}
