package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTally_Record(t *testing.T) {
	t.Run("Player win", func(t *testing.T) {
		var tally Tally

		tally.Record(OutcomeWin, PlayerX)

		assert.Equal(t, Tally{GamesPlayed: 1, PlayerWins: 1}, tally)
	})

	t.Run("Computer win", func(t *testing.T) {
		var tally Tally

		tally.Record(OutcomeWin, PlayerO)

		assert.Equal(t, Tally{GamesPlayed: 1, ComputerWins: 1}, tally)
	})

	t.Run("Tie", func(t *testing.T) {
		var tally Tally

		tally.Record(OutcomeTie, EmptyCell)

		assert.Equal(t, Tally{GamesPlayed: 1, Ties: 1}, tally)
	})

	t.Run("Game in progress is not counted", func(t *testing.T) {
		var tally Tally

		tally.Record(OutcomeInProgress, EmptyCell)

		assert.True(t, tally.IsZero())
	})
}

func TestTally_Verdict(t *testing.T) {
	t.Run("Player wins the match", func(t *testing.T) {
		tally := Tally{GamesPlayed: 5, PlayerWins: 3, ComputerWins: 1, Ties: 1}

		verdict := tally.Verdict(DefaultTotalGames)

		assert.Equal(t, Verdict{
			Result:       MatchPlayerWin,
			PlayerWins:   3,
			ComputerWins: 1,
			Ties:         1,
			TotalGames:   5,
		}, verdict)
	})

	t.Run("Computer wins the match", func(t *testing.T) {
		tally := Tally{GamesPlayed: 5, PlayerWins: 1, ComputerWins: 2, Ties: 2}

		verdict := tally.Verdict(DefaultTotalGames)

		assert.Equal(t, MatchComputerWin, verdict.Result)
	})

	t.Run("Equal wins is a draw regardless of ties", func(t *testing.T) {
		tally := Tally{GamesPlayed: 5, PlayerWins: 1, ComputerWins: 1, Ties: 3}

		verdict := tally.Verdict(DefaultTotalGames)

		assert.Equal(t, MatchDraw, verdict.Result)
		assert.Equal(t, 3, verdict.Ties)
	})
}
