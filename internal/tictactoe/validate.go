package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

// Validate checks that the board can be reached from InitialState by
// alternating play. Boards built only through Result always pass.
func (that Board) Validate() error {
	for row := range size {
		for col := range size {
			switch that[row][col] {
			case X, O, Empty:
			default:
				return fmt.Errorf("%w: unknown mark %q at (%d, %d)", apperror.ErrMalformedBoard, that[row][col], row, col)
			}
		}
	}

	xs, os := that.count()
	if xs != os && xs != os+1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrMalformedBoard, xs, os)
	}

	xWins, oWins := that.hasLine(X), that.hasLine(O)
	switch {
	case xWins && oWins:
		return fmt.Errorf("%w: both players have a line", apperror.ErrMalformedBoard)
	case xWins && xs != os+1:
		return fmt.Errorf("%w: X has a line but O moved after it", apperror.ErrMalformedBoard)
	case oWins && xs != os:
		return fmt.Errorf("%w: O has a line but X moved after it", apperror.ErrMalformedBoard)
	}

	return nil
}

func (that Board) hasLine(mark Cell) bool {
	for _, line := range lines {
		if that.at(line[0]) == mark && that.at(line[1]) == mark && that.at(line[2]) == mark {
			return true
		}
	}

	return false
}
