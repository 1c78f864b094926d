// Package presenter turns match state into the texts the front ends show.
package presenter

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

// Status - the line shown above the board.
func Status(state *entity.MatchState) string {
	switch state.Game.Outcome {
	case entity.OutcomeWin:
		return fmt.Sprintf("Player %s wins!", state.Game.Winner)
	case entity.OutcomeTie:
		return "It's a tie!"
	}

	if !state.MatchActive {
		return "Match is over"
	}

	return fmt.Sprintf("Player %s's turn", state.Game.Turn)
}

func Score(tally entity.Tally) string {
	return fmt.Sprintf("Player Wins: %d | Computer Wins: %d | Ties: %d", tally.PlayerWins, tally.ComputerWins, tally.Ties)
}

// Verdict - the final message, empty while the match goes on.
func Verdict(verdict *entity.Verdict) string {
	if verdict == nil {
		return ""
	}

	switch verdict.Result {
	case entity.MatchPlayerWin:
		return fmt.Sprintf("Congratulations! Player X wins with %d out of %d games.", verdict.PlayerWins, verdict.TotalGames)
	case entity.MatchComputerWin:
		return fmt.Sprintf("Computer wins with %d out of %d games.", verdict.ComputerWins, verdict.TotalGames)
	default:
		return fmt.Sprintf("Match Draw! Both players have won %d times with %d ties.", verdict.PlayerWins, verdict.Ties)
	}
}
