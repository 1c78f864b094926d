package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-match/internal/usecase"
)

// computerTurnMsg and autoResetMsg carry the generation they were scheduled in,
// so ticks scheduled before a manual reset are dropped.
type computerTurnMsg struct{ generation int }

type autoResetMsg struct{ generation int }

type model struct {
	ctx    context.Context
	logger *slog.Logger
	match  *usecase.Match
	state  entity.MatchState

	cursor     int
	generation int
	lastError  string

	computerDelay time.Duration
	resetDelay    time.Duration
}

func newModel(ctx context.Context, logger *slog.Logger, match *usecase.Match, computerDelay, resetDelay time.Duration) model {
	return model{
		ctx:           ctx,
		logger:        logger,
		match:         match,
		state:         match.State(),
		cursor:        4,
		computerDelay: computerDelay,
		resetDelay:    resetDelay,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case computerTurnMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		state, err := m.match.ComputerMove(m.ctx)
		return m.apply(state, err)
	case autoResetMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.generation++
		m.state = m.match.ResetGame()
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.cursor = (m.cursor + 6) % entity.BoardSize
	case "down", "j":
		m.cursor = (m.cursor + 3) % entity.BoardSize
	case "left", "h":
		m.cursor = m.cursor/3*3 + (m.cursor+2)%3
	case "right", "l":
		m.cursor = m.cursor/3*3 + (m.cursor+1)%3
	case "enter", " ":
		return m.playerMove(m.cursor)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.cursor = int(key[0] - '1')
		return m.playerMove(m.cursor)
	case "r":
		m.generation++
		m.state = m.match.ResetGame()
	case "R":
		m.generation++
		state, err := m.match.ResetAll(m.ctx)
		m.state = state
		m.setError(err)
	}
	return m, nil
}

func (m model) playerMove(cell int) (tea.Model, tea.Cmd) {
	state, err := m.match.PlayerMove(m.ctx, cell)
	return m.apply(state, err)
}

// apply - stores the new state and schedules what the browser version does with timers.
func (m model) apply(state entity.MatchState, err error) (tea.Model, tea.Cmd) {
	m.state = state
	m.setError(err)

	generation := m.generation

	switch {
	case state.ComputerToMove():
		return m, tea.Tick(m.computerDelay, func(time.Time) tea.Msg {
			return computerTurnMsg{generation: generation}
		})
	case state.Game.IsFinished():
		return m, tea.Tick(m.resetDelay, func(time.Time) tea.Msg {
			return autoResetMsg{generation: generation}
		})
	}

	return m, nil
}

func (m *model) setError(err error) {
	m.lastError = ""
	if err != nil {
		m.logger.Error("match operation failed", "error", err)
		m.lastError = err.Error()
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(presenter.Status(&m.state) + "\n\n")

	for row := range 3 {
		for col := range 3 {
			cell := row*3 + col
			mark := string(m.state.Game.Board[cell])
			if mark == "" {
				mark = " "
			}

			if cell == m.cursor {
				fmt.Fprintf(&b, "[%s]", mark)
			} else {
				fmt.Fprintf(&b, " %s ", mark)
			}

			if col < 2 {
				b.WriteString("|")
			}
		}
		b.WriteString("\n")
		if row < 2 {
			b.WriteString("---+---+---\n")
		}
	}

	b.WriteString("\n" + presenter.Score(m.state.Tally) + "\n")

	if verdict := presenter.Verdict(m.state.Verdict); verdict != "" {
		b.WriteString(verdict + "\n")
	}

	if m.lastError != "" {
		b.WriteString("error: " + m.lastError + "\n")
	}

	b.WriteString("\narrows/1-9 + enter to play, r new game, R reset all, q quit\n")

	return b.String()
}
