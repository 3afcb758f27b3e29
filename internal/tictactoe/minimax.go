package tictactoe

// Utility is the value of a position for X: +1 win, -1 loss, 0 draw.
type Utility int

const (
	OWins Utility = -1
	Draw  Utility = 0
	XWins Utility = 1
)

// Analysis is the outcome of a full search from a position.
type Analysis struct {
	Action Action  `json:"action"`
	Found  bool    `json:"found"`
	Value  Utility `json:"value"`
	Nodes  int     `json:"nodes"`
}

// candidate is the accumulator of the fold over a position's actions.
type candidate struct {
	value  Utility
	action Action
	found  bool
}

// searcher counts visited positions. A new one is used for every search.
type searcher struct {
	nodes int
}

// Minimax returns the optimal action for the player to move.
// The second result is false when the board is terminal.
func Minimax(board Board) (Action, bool) {
	analysis := Analyze(board)

	return analysis.Action, analysis.Found
}

// Analyze searches board exhaustively and reports the chosen action together
// with the value of the position under optimal play.
func Analyze(board Board) Analysis {
	s := &searcher{}

	var best candidate
	if board.Player() == X {
		best = s.maxValue(board)
	} else {
		best = s.minValue(board)
	}

	return Analysis{
		Action: best.action,
		Found:  best.found,
		Value:  best.value,
		Nodes:  s.nodes,
	}
}

// MaxValue returns the best value X can force and the action achieving it.
func MaxValue(board Board) (Utility, Action, bool) {
	best := (&searcher{}).maxValue(board)

	return best.value, best.action, best.found
}

// MinValue returns the best value O can force and the action achieving it.
func MinValue(board Board) (Utility, Action, bool) {
	best := (&searcher{}).minValue(board)

	return best.value, best.action, best.found
}

func (that *searcher) maxValue(board Board) candidate {
	return that.fold(board, that.minValue, func(v, best Utility) bool { return v > best }, XWins)
}

func (that *searcher) minValue(board Board) candidate {
	return that.fold(board, that.maxValue, func(v, best Utility) bool { return v < best }, OWins)
}

// fold walks the actions of board in row-major order and keeps the first
// action whose reply value is strictly better than the current best. It stops
// as soon as the best value reaches optimum, which cannot be improved on.
func (that *searcher) fold(
	board Board,
	reply func(Board) candidate,
	better func(v, best Utility) bool,
	optimum Utility,
) candidate {
	that.nodes++

	if board.Terminal() {
		return candidate{value: board.Utility()}
	}

	mark := board.Player()

	var best candidate
	for _, action := range board.Actions() {
		next := reply(board.place(action, mark))
		if !best.found || better(next.value, best.value) {
			best = candidate{value: next.value, action: action, found: true}
		}

		if best.value == optimum {
			break
		}
	}

	return best
}
