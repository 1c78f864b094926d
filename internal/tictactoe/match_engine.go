package tictactoe

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

// Reasons a move is ignored. ApplyMove never returns them, they only show up in logs and tests.
var (
	errCellOccupied = errors.New("cell is already occupied")
	errNotYourTurn  = errors.New("it's not your turn")
	errGameFinished = errors.New("game is already finished")
	errMatchOver    = errors.New("match is over")
)

type Option func(*MatchEngine)

// WithSelector - replaces the uniform random choice of the computer.
func WithSelector(selector Selector) Option {
	return func(that *MatchEngine) {
		if selector != nil {
			that.selector = selector
		}
	}
}

func WithTotalGames(totalGames int) Option {
	return func(that *MatchEngine) {
		if totalGames > 0 {
			that.totalGames = totalGames
		}
	}
}

// MatchEngine owns one game board and the tally of the match it belongs to.
// It is not safe for concurrent use: callers apply moves one at a time.
type MatchEngine struct {
	game        entity.GameState
	tally       entity.Tally
	totalGames  int
	matchActive bool
	selector    Selector
}

func NewMatchEngine(opts ...Option) *MatchEngine {
	engine := &MatchEngine{
		game:        entity.NewGameState(),
		totalGames:  entity.DefaultTotalGames,
		matchActive: true,
		selector:    RandomSelector,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// ApplyMove - places mark on cell and settles the game.
// Moves that break the rules are ignored and reported as not applied; only an index
// outside the board is an error.
func (that *MatchEngine) ApplyMove(cell int, mark entity.Mark) (bool, error) {
	if !entity.IsValidCell(cell) {
		return false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if err := that.validateMove(cell, mark); err != nil {
		return false, nil
	}

	that.game.Board[cell] = mark
	that.updateGameStatus(mark)

	return true, nil
}

// validateMove - checks if the move is allowed right now.
func (that *MatchEngine) validateMove(cell int, mark entity.Mark) error {
	switch {
	case !that.matchActive:
		return errMatchOver
	case !that.game.Active:
		return errGameFinished
	case that.game.Turn != mark:
		return errNotYourTurn
	case that.game.Board[cell] != entity.EmptyCell:
		return errCellOccupied
	}

	return nil
}

// updateGameStatus - win first, then tie, otherwise hand the turn over.
func (that *MatchEngine) updateGameStatus(mark entity.Mark) {
	switch {
	case that.game.Board.HasLine(mark):
		that.finishGame(entity.OutcomeWin, mark)
	case that.game.Board.IsFull():
		that.finishGame(entity.OutcomeTie, entity.EmptyCell)
	default:
		that.game.Turn = mark.Opponent()
	}
}

func (that *MatchEngine) finishGame(outcome entity.Outcome, winner entity.Mark) {
	that.game.Outcome = outcome
	that.game.Winner = winner
	that.game.Active = false

	that.tally.Record(outcome, winner)
	that.CheckMatchEnd()
}

// ComputerTurn - lets the computer pick one of the free cells.
// It is a no-op unless the game is live and waiting for the computer.
func (that *MatchEngine) ComputerTurn() (int, bool) {
	if !that.matchActive || !that.game.Active || that.game.Turn != entity.ComputerMark {
		return 0, false
	}

	available := that.game.Board.EmptyCells()
	if len(available) == 0 {
		return 0, false
	}

	cell := that.selector(available)
	if !slices.Contains(available, cell) {
		return 0, false
	}

	applied, err := that.ApplyMove(cell, entity.ComputerMark)
	if err != nil || !applied {
		return 0, false
	}

	return cell, true
}

// CheckMatchEnd - locks the match once enough games have been played and returns the verdict.
func (that *MatchEngine) CheckMatchEnd() (entity.Verdict, bool) {
	if that.tally.GamesPlayed < that.totalGames {
		return entity.Verdict{}, false
	}

	that.matchActive = false

	return that.tally.Verdict(that.totalGames), true
}

// ResetGame - starts a fresh game. The tally and a match lock are kept.
func (that *MatchEngine) ResetGame() {
	that.game = entity.NewGameState()
}

// ResetAll - clears the tally, starts a fresh game and accepts moves again.
func (that *MatchEngine) ResetAll() {
	that.tally = entity.Tally{}
	that.matchActive = true
	that.ResetGame()
}

// RestoreTally - seeds the tally with persisted counters. A finished match stays locked.
func (that *MatchEngine) RestoreTally(tally entity.Tally) {
	that.tally = tally
	that.matchActive = true
	that.CheckMatchEnd()
}

func (that *MatchEngine) Board() entity.Board {
	return that.game.Board
}

func (that *MatchEngine) Turn() entity.Mark {
	return that.game.Turn
}

func (that *MatchEngine) IsActive() bool {
	return that.game.Active
}

func (that *MatchEngine) IsMatchActive() bool {
	return that.matchActive
}

func (that *MatchEngine) Outcome() (entity.Outcome, entity.Mark) {
	return that.game.Outcome, that.game.Winner
}

func (that *MatchEngine) Tally() entity.Tally {
	return that.tally
}

func (that *MatchEngine) TotalGames() int {
	return that.totalGames
}

// State - a copy of everything the presentation layer renders.
func (that *MatchEngine) State() entity.MatchState {
	state := entity.MatchState{
		Game:        that.game,
		Tally:       that.tally,
		MatchActive: that.matchActive,
		TotalGames:  that.totalGames,
	}

	if !that.matchActive {
		verdict := that.tally.Verdict(that.totalGames)
		state.Verdict = &verdict
	}

	return state
}
