package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	app "github.com/rocketscienceinc/tictactoe-match/internal"
	"github.com/rocketscienceinc/tictactoe-match/internal/config"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository"
	"github.com/rocketscienceinc/tictactoe-match/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-match/internal/usecase"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (environment and defaults when empty)")
	logPath := flag.String("log", "", "write JSON logs to this file")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	conf, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer logFile.Close()
		logOut = logFile
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: config.ParseLogLevel(conf.LogLevel)}))

	ctx := context.Background()

	store, err := app.OpenStorage(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not open storage: %w", err)
	}
	defer store.Close()

	// a single local player keeps the bare counter names
	tallyRepo := repository.NewTallyRepository(store, "")
	engine := tictactoe.NewMatchEngine(tictactoe.WithTotalGames(conf.Match.TotalGames))
	match := usecase.NewMatch(logger, tallyRepo, engine)

	if _, err = match.Start(ctx); err != nil {
		return fmt.Errorf("failed to start match: %w", err)
	}

	p := tea.NewProgram(newModel(ctx, logger, match, conf.Match.ComputerDelay, conf.Match.ResetDelay))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadEnv()
	}
	return config.Load(path)
}
