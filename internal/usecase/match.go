package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/tictactoe"
)

type tallyRepo interface {
	Load(ctx context.Context) (entity.Tally, error)
	Save(ctx context.Context, tally entity.Tally) error
	Clear(ctx context.Context) error
}

// Match drives one MatchEngine on behalf of a front end and keeps the stored tally in step with it.
// Like the engine it expects calls one at a time.
type Match struct {
	logger    *slog.Logger
	tallyRepo tallyRepo
	engine    *tictactoe.MatchEngine
}

func NewMatch(logger *slog.Logger, tallyRepo tallyRepo, engine *tictactoe.MatchEngine) *Match {
	return &Match{
		logger:    logger.With("component", "match"),
		tallyRepo: tallyRepo,
		engine:    engine,
	}
}

// Start - restores the stored tally into the engine.
func (that *Match) Start(ctx context.Context) (entity.MatchState, error) {
	tally, err := that.tallyRepo.Load(ctx)
	if err != nil {
		return that.engine.State(), fmt.Errorf("failed to load tally: %w", err)
	}

	that.engine.RestoreTally(tally)

	that.logger.Debug("match restored", "tally", tally, "match_active", that.engine.IsMatchActive())

	return that.engine.State(), nil
}

// PlayerMove - the human places X. Ignored moves leave the state as it was.
func (that *Match) PlayerMove(ctx context.Context, cell int) (entity.MatchState, error) {
	log := that.logger.With("method", "PlayerMove", "cell", cell)

	before := that.engine.Tally()

	applied, err := that.engine.ApplyMove(cell, entity.HumanMark)
	if err != nil {
		return that.engine.State(), fmt.Errorf("failed to make turn: %w", err)
	}

	if !applied {
		log.Debug("move ignored", "turn", that.engine.Turn(), "active", that.engine.IsActive(),
			"match_active", that.engine.IsMatchActive())
		return that.engine.State(), nil
	}

	return that.persistIfChanged(ctx, before)
}

// ComputerMove - the computer answers with O on a random free cell.
func (that *Match) ComputerMove(ctx context.Context) (entity.MatchState, error) {
	log := that.logger.With("method", "ComputerMove")

	before := that.engine.Tally()

	cell, applied := that.engine.ComputerTurn()
	if !applied {
		log.Debug("computer has nothing to do")
		return that.engine.State(), nil
	}

	log.Debug("computer moved", "cell", cell)

	return that.persistIfChanged(ctx, before)
}

func (that *Match) ResetGame() entity.MatchState {
	that.engine.ResetGame()

	return that.engine.State()
}

// ResetAll - zeroes the tally, removes the stored counters and unlocks the match.
func (that *Match) ResetAll(ctx context.Context) (entity.MatchState, error) {
	that.engine.ResetAll()

	if err := that.tallyRepo.Clear(ctx); err != nil {
		return that.engine.State(), fmt.Errorf("failed to clear tally: %w", err)
	}

	that.logger.Info("match reset")

	return that.engine.State(), nil
}

func (that *Match) State() entity.MatchState {
	return that.engine.State()
}

func (that *Match) persistIfChanged(ctx context.Context, before entity.Tally) (entity.MatchState, error) {
	state := that.engine.State()
	if state.Tally == before {
		return state, nil
	}

	that.logger.Info("game finished",
		"outcome", state.Game.Outcome,
		"winner", state.Game.Winner,
		"games_played", state.Tally.GamesPlayed,
	)

	if state.Verdict != nil {
		that.logger.Info("match finished", "result", state.Verdict.Result)
	}

	if err := that.tallyRepo.Save(ctx, state.Tally); err != nil {
		return state, fmt.Errorf("failed to save tally: %w", err)
	}

	return state, nil
}
