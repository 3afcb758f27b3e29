package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playOut lets Minimax play both sides from board until the game ends.
func playOut(t *testing.T, board Board) Board {
	t.Helper()

	for !board.Terminal() {
		action, ok := Minimax(board)
		require.True(t, ok)

		next, err := board.Result(action)
		require.NoError(t, err)
		board = next
	}

	return board
}

// assertNeverLoses plays bot with Minimax against every possible reply of the opponent.
func assertNeverLoses(t *testing.T, board Board, bot Cell) {
	t.Helper()

	if board.Terminal() {
		require.NotEqual(t, bot.Opponent(), board.Winner(), board.String())
		return
	}

	if board.Player() == bot {
		action, ok := Minimax(board)
		require.True(t, ok)

		next, err := board.Result(action)
		require.NoError(t, err)
		assertNeverLoses(t, next, bot)

		return
	}

	for _, action := range board.Actions() {
		next, err := board.Result(action)
		require.NoError(t, err)
		assertNeverLoses(t, next, bot)
	}
}

func TestMinimax(t *testing.T) {
	t.Run("Completes the winning row", func(t *testing.T) {
		// Given: X has two in the top row and it is X's turn
		board := Board{{X, X, e}, {O, O, e}, {e, e, e}}
		require.Equal(t, X, board.Player())

		// When: asking for the best move
		action, ok := Minimax(board)

		// Then: X completes the row and wins
		require.True(t, ok)
		assert.Equal(t, Action{Row: 0, Col: 2}, action)

		next, err := board.Result(action)
		require.NoError(t, err)
		assert.Equal(t, XWins, next.Utility())
	})

	t.Run("O takes the immediate win over a block", func(t *testing.T) {
		// Given: O can win on the middle row while X threatens the top row
		board := Board{{X, X, e}, {O, O, e}, {X, e, e}}
		require.Equal(t, O, board.Player())

		// When: asking for the best move
		action, ok := Minimax(board)

		// Then: O completes the middle row
		require.True(t, ok)
		assert.Equal(t, Action{Row: 1, Col: 2}, action)
	})

	t.Run("Blocks the opponent's line", func(t *testing.T) {
		// Given: O threatens the left column and X cannot win at once
		board := Board{{O, X, e}, {O, X, e}, {e, O, X}}
		require.Equal(t, X, board.Player())

		// When: asking for the best move
		action, ok := Minimax(board)

		// Then: X blocks at the bottom left
		require.True(t, ok)
		assert.Equal(t, Action{Row: 2, Col: 0}, action)
	})

	t.Run("First winning move in row-major order is kept", func(t *testing.T) {
		// Given: X can win either at (0, 2) or at (2, 0)
		board := Board{{X, X, e}, {X, O, O}, {e, O, e}}
		require.Equal(t, X, board.Player())

		// When: asking for the best move
		action, ok := Minimax(board)

		// Then: the row-major first of the winning moves is chosen
		require.True(t, ok)
		assert.Equal(t, Action{Row: 0, Col: 2}, action)
	})

	t.Run("Terminal board has no move", func(t *testing.T) {
		boards := []Board{
			{{X, X, X}, {O, O, e}, {e, e, e}},
			{{X, O, X}, {X, O, O}, {O, X, X}},
		}

		for _, board := range boards {
			action, ok := Minimax(board)

			assert.False(t, ok)
			assert.Equal(t, Action{}, action)
		}
	})

	t.Run("Opens in the first corner on an empty board", func(t *testing.T) {
		// Every opening draws, so the first one in row-major order is kept.
		action, ok := Minimax(InitialState())

		require.True(t, ok)
		assert.Equal(t, Action{Row: 0, Col: 0}, action)
	})

	t.Run("Optimal play from the start is a draw", func(t *testing.T) {
		final := playOut(t, InitialState())

		assert.Equal(t, Draw, final.Utility())
		assert.Empty(t, final.Actions())
	})

	t.Run("X never loses to any O strategy", func(t *testing.T) {
		assertNeverLoses(t, InitialState(), X)
	})

	t.Run("O never loses to any X strategy", func(t *testing.T) {
		assertNeverLoses(t, InitialState(), O)
	})
}

func TestMaxValueMinValue(t *testing.T) {
	t.Run("Terminal board returns its utility without an action", func(t *testing.T) {
		board := Board{{O, O, O}, {X, X, e}, {X, e, X}}

		value, action, ok := MaxValue(board)
		assert.Equal(t, OWins, value)
		assert.Equal(t, Action{}, action)
		assert.False(t, ok)

		value, action, ok = MinValue(board)
		assert.Equal(t, OWins, value)
		assert.Equal(t, Action{}, action)
		assert.False(t, ok)
	})

	t.Run("Empty board is worth a draw", func(t *testing.T) {
		value, _, ok := MaxValue(InitialState())

		require.True(t, ok)
		assert.Equal(t, Draw, value)
	})

	t.Run("Forced win for X is found", func(t *testing.T) {
		// Given: X holds opposite corners and the centre is free
		board := Board{{X, O, e}, {O, e, e}, {e, e, X}}
		require.Equal(t, X, board.Player())

		// When: evaluating for X
		value, action, ok := MaxValue(board)

		// Then: the first forcing move is kept, a double threat at (0, 2)
		// that beats the immediate win in the centre in row-major order
		require.True(t, ok)
		assert.Equal(t, XWins, value)
		assert.Equal(t, Action{Row: 0, Col: 2}, action)
	})

	t.Run("Min value picks O's win", func(t *testing.T) {
		board := Board{{X, X, e}, {O, O, e}, {X, e, e}}

		value, action, ok := MinValue(board)

		require.True(t, ok)
		assert.Equal(t, OWins, value)
		assert.Equal(t, Action{Row: 1, Col: 2}, action)
	})
}

func TestAnalyze(t *testing.T) {
	t.Run("Reports value and visited positions", func(t *testing.T) {
		// Given: the winning-row position
		board := Board{{X, X, e}, {O, O, e}, {e, e, e}}

		// When: analysing it
		analysis := Analyze(board)

		// Then: the win is found after looking at the root and the winning child only
		assert.True(t, analysis.Found)
		assert.Equal(t, Action{Row: 0, Col: 2}, analysis.Action)
		assert.Equal(t, XWins, analysis.Value)
		assert.Equal(t, 2, analysis.Nodes)
	})

	t.Run("Terminal board visits one position", func(t *testing.T) {
		analysis := Analyze(Board{{X, O, X}, {X, O, O}, {O, X, X}})

		assert.False(t, analysis.Found)
		assert.Equal(t, Draw, analysis.Value)
		assert.Equal(t, 1, analysis.Nodes)
	})

	t.Run("Agrees with the side to move's value function", func(t *testing.T) {
		for _, board := range reachableBoards(t) {
			if board.Terminal() || len(board.Actions()) > 6 {
				continue
			}

			search := MinValue
			if board.Player() == X {
				search = MaxValue
			}
			value, action, ok := search(board)
			analysis := Analyze(board)

			assert.Equal(t, ok, analysis.Found)
			assert.Equal(t, value, analysis.Value, board.String())
			assert.Equal(t, action, analysis.Action, board.String())
		}
	})

	t.Run("Value matches the played-out result", func(t *testing.T) {
		for _, board := range reachableBoards(t) {
			if board.Terminal() || len(board.Actions()) > 5 {
				continue
			}

			analysis := Analyze(board)
			final := playOut(t, board)

			assert.Equal(t, analysis.Value, final.Utility(), board.String())
		}
	})
}
