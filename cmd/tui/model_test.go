package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-match/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-match/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) model {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tallyRepo := repository.NewTallyRepository(storage.NewMemoryStorage(), "")
	engine := tictactoe.NewMatchEngine(tictactoe.WithSelector(tictactoe.FirstSelector))
	match := usecase.NewMatch(logger, tallyRepo, engine)

	_, err := match.Start(context.Background())
	require.NoError(t, err)

	return newModel(context.Background(), logger, match, time.Millisecond, time.Millisecond)
}

func press(t *testing.T, m model, key string) (model, tea.Cmd) {
	t.Helper()

	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}

	next, cmd := m.Update(msg)

	return next.(model), cmd
}

func deliver(t *testing.T, m model, cmd tea.Cmd) (model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)

	next, nextCmd := m.Update(cmd())

	return next.(model), nextCmd
}

func TestModel_PlayAgainstComputer(t *testing.T) {
	// Given: a fresh model
	m := newTestModel(t)

	// When: the player presses 5
	m, cmd := press(t, m, "5")

	// Then: X is placed in the centre and the computer's reply is scheduled
	assert.Equal(t, entity.PlayerX, m.state.Game.Board[4])
	assert.Contains(t, m.View(), "Player O's turn")

	// When: the scheduled reply arrives
	m, cmd = deliver(t, m, cmd)

	// Then: the computer has taken the first free cell
	assert.Equal(t, entity.PlayerO, m.state.Game.Board[0])
	assert.Nil(t, cmd)
}

func TestModel_WinAndAutoReset(t *testing.T) {
	m := newTestModel(t)

	var cmd tea.Cmd
	for _, key := range []string{"4", "5"} {
		m, cmd = press(t, m, key)
		m, _ = deliver(t, m, cmd)
	}

	// When: X completes the middle row
	m, cmd = press(t, m, "6")

	// Then: X wins and the score line shows it
	assert.Equal(t, entity.OutcomeWin, m.state.Game.Outcome)
	assert.Contains(t, m.View(), "Player X wins!")
	assert.Contains(t, m.View(), "Player Wins: 1 | Computer Wins: 0 | Ties: 0")

	// And: the automatic reset clears the board
	m, _ = deliver(t, m, cmd)
	assert.Equal(t, entity.Board{}, m.state.Game.Board)
	assert.Equal(t, 1, m.state.Tally.PlayerWins)
}

func TestModel_StaleTickAfterReset(t *testing.T) {
	// Given: the computer's reply is pending
	m := newTestModel(t)
	m, cmd := press(t, m, "1")

	// When: the player starts a new game before it arrives
	m, _ = press(t, m, "r")
	m, _ = deliver(t, m, cmd)

	// Then: the stale reply is dropped
	assert.Equal(t, entity.Board{}, m.state.Game.Board)
}

func TestModel_Cursor(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, 4, m.cursor)

	m, _ = press(t, m, "left")
	assert.Equal(t, 3, m.cursor)

	m, _ = press(t, m, "left")
	assert.Equal(t, 5, m.cursor)

	m, _ = press(t, m, "up")
	assert.Equal(t, 2, m.cursor)

	m, _ = press(t, m, "enter")
	assert.Equal(t, entity.PlayerX, m.state.Game.Board[2])
}

func TestModel_ResetAll(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(t, m, "1")
	m, _ = deliver(t, m, cmd)

	m, _ = press(t, m, "R")

	assert.Equal(t, entity.Board{}, m.state.Game.Board)
	assert.True(t, m.state.Tally.IsZero())
	assert.True(t, m.state.MatchActive)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := press(t, m, "q")

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
