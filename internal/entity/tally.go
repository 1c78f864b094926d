package entity

const DefaultTotalGames = 5

type MatchResult string

const (
	MatchPlayerWin   MatchResult = "player"
	MatchComputerWin MatchResult = "computer"
	MatchDraw        MatchResult = "draw"
)

// Tally - cumulative counters of the current match.
type Tally struct {
	GamesPlayed  int `json:"games_played"`
	PlayerWins   int `json:"player_wins"`
	ComputerWins int `json:"computer_wins"`
	Ties         int `json:"ties"`
}

// Record - counts one concluded game. Games still in progress are ignored.
func (that *Tally) Record(outcome Outcome, winner Mark) {
	switch outcome {
	case OutcomeWin:
		if winner == HumanMark {
			that.PlayerWins++
		} else {
			that.ComputerWins++
		}
	case OutcomeTie:
		that.Ties++
	default:
		return
	}

	that.GamesPlayed++
}

func (that *Tally) IsZero() bool {
	return *that == Tally{}
}

type Verdict struct {
	Result       MatchResult `json:"result"`
	PlayerWins   int         `json:"player_wins"`
	ComputerWins int         `json:"computer_wins"`
	Ties         int         `json:"ties"`
	TotalGames   int         `json:"total_games"`
}

// Verdict - compares player and computer wins. Ties only matter for the draw message.
func (that *Tally) Verdict(totalGames int) Verdict {
	verdict := Verdict{
		Result:       MatchDraw,
		PlayerWins:   that.PlayerWins,
		ComputerWins: that.ComputerWins,
		Ties:         that.Ties,
		TotalGames:   totalGames,
	}

	switch {
	case that.PlayerWins > that.ComputerWins:
		verdict.Result = MatchPlayerWin
	case that.ComputerWins > that.PlayerWins:
		verdict.Result = MatchComputerWin
	}

	return verdict
}

// MatchState - a read-only snapshot of a game and the match around it.
type MatchState struct {
	Game        GameState `json:"game"`
	Tally       Tally     `json:"tally"`
	MatchActive bool      `json:"match_active"`
	TotalGames  int       `json:"total_games"`
	Verdict     *Verdict  `json:"verdict,omitempty"`
}

// ComputerToMove - the game is live and waiting for the computer's reply.
func (that *MatchState) ComputerToMove() bool {
	return that.MatchActive && that.Game.Active && that.Game.Turn == ComputerMark
}
