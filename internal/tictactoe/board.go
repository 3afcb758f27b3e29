package tictactoe

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const size = 3

// Cell is the content of a single square.
type Cell string

const (
	X     Cell = "X"
	O     Cell = "O"
	Empty Cell = ""
)

// Opponent returns the other player's mark. Empty has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Action is a (row, col) coordinate of the cell to mark.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid reports whether both coordinates are within the board.
func (that Action) Valid() bool {
	return that.Row >= 0 && that.Row < size && that.Col >= 0 && that.Col < size
}

func (that Action) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Board is a 3x3 grid indexed as [row][col]. It is an array, so every
// assignment or call copies it; methods never modify the receiver.
type Board [size][size]Cell

// lines are the winning lines in the order they are checked: rows, columns, diagonals.
var lines = [8][3]Action{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// InitialState returns the empty starting board.
func InitialState() Board {
	return Board{}
}

// Player returns the mark of the player to move. X always moves first.
func (that Board) Player() Cell {
	xs, os := that.count()
	if xs > os {
		return O
	}

	return X
}

// Actions returns every empty cell in row-major order.
func (that Board) Actions() []Action {
	actions := make([]Action, 0, size*size)
	for row := range size {
		for col := range size {
			if that[row][col] == Empty {
				actions = append(actions, Action{Row: row, Col: col})
			}
		}
	}

	return actions
}

// Result returns the board after the player to move marks action.
func (that Board) Result(action Action) (Board, error) {
	if !action.Valid() {
		return that, fmt.Errorf("%w: cell %s is out of bounds", apperror.ErrInvalidAction, action)
	}

	if that[action.Row][action.Col] != Empty {
		return that, fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidAction, action)
	}

	return that.place(action, that.Player()), nil
}

// place returns a copy of the board with mark at action. No checks.
func (that Board) place(action Action, mark Cell) Board {
	that[action.Row][action.Col] = mark

	return that
}

// Winner returns the mark owning the first complete line, or Empty.
func (that Board) Winner() Cell {
	for _, line := range lines {
		a, b, c := that.at(line[0]), that.at(line[1]), that.at(line[2])
		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}

// Terminal reports whether the game is over: someone won or the board is full.
func (that Board) Terminal() bool {
	if that.Winner() != Empty {
		return true
	}

	return len(that.Actions()) == 0
}

// Utility scores a terminal board from X's point of view.
// On a non-terminal board without a winner it returns Draw.
func (that Board) Utility() Utility {
	switch that.Winner() {
	case X:
		return XWins
	case O:
		return OWins
	default:
		return Draw
	}
}

func (that Board) String() string {
	var sb strings.Builder
	for row := range size {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range size {
			if that[row][col] == Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(that[row][col]))
		}
	}

	return sb.String()
}

func (that Board) at(action Action) Cell {
	return that[action.Row][action.Col]
}

func (that Board) count() (int, int) {
	var xs, os int
	for _, row := range that {
		for _, cell := range row {
			switch cell {
			case X:
				xs++
			case O:
				os++
			}
		}
	}

	return xs, os
}
