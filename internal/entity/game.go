package entity

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

// The human always plays X and moves first; the computer answers with O.
const (
	HumanMark    = PlayerX
	ComputerMark = PlayerO
)

const BoardSize = 9

type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWin        Outcome = "win"
	OutcomeTie        Outcome = "tie"
)

// WinCombos - the 3 rows, 3 columns and 2 diagonals of a row-major 3x3 board.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent - returns the mark that plays after this one.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

type Board [BoardSize]Mark

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

// HasLine - reports whether some winning line is fully occupied by mark.
func (that *Board) HasLine(mark Mark) bool {
	if mark == EmptyCell {
		return false
	}

	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// EmptyCells - indices of free cells in ascending order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

func (that *Board) Filled() int {
	return BoardSize - len(that.EmptyCells())
}

// GameState - a single game: board, whose turn it is and how it ended.
type GameState struct {
	Board   Board   `json:"board"`
	Turn    Mark    `json:"player_turn"`
	Active  bool    `json:"active"`
	Outcome Outcome `json:"outcome"`
	Winner  Mark    `json:"winner,omitempty"`
}

func NewGameState() GameState {
	return GameState{
		Turn:    HumanMark,
		Active:  true,
		Outcome: OutcomeInProgress,
	}
}

func (that *GameState) IsFinished() bool {
	return that.Outcome == OutcomeWin || that.Outcome == OutcomeTie
}
